package clients

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type mockRepo struct {
	clients map[uuid.UUID]*Client
	// ids of clients that have invoices and therefore cannot be deleted
	referenced map[uuid.UUID]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{clients: map[uuid.UUID]*Client{}, referenced: map[uuid.UUID]bool{}}
}

func (m *mockRepo) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	var out []Client
	for _, c := range m.clients {
		if req.Search != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*req.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepo) Create(ctx context.Context, c Client) (*Client, error) {
	for _, existing := range m.clients {
		if existing.TaxID == c.TaxID {
			return nil, shared.ErrAlreadyExists
		}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.clients[c.ID] = &c
	copied := c
	return &copied, nil
}

func (m *mockRepo) Update(ctx context.Context, c Client) (*Client, error) {
	if _, ok := m.clients[c.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	m.clients[c.ID] = &c
	copied := c
	return &copied, nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.clients[id]; !ok {
		return shared.ErrNotFound
	}
	if m.referenced[id] {
		return shared.ErrAlreadyExists
	}
	delete(m.clients, id)
	return nil
}

func TestCreateClientTrimsFields(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "  Acme Corp ",
		TaxID: " 12-3456789 ",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", c.Name)
	require.Equal(t, "12-3456789", c.TaxID)
}

func TestCreateClientDuplicateTaxID(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateClientRequest{Name: "Acme", TaxID: "12-3456789"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateClientRequest{Name: "Other", TaxID: "12-3456789"})
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestUpdateClientPartial(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.Create(context.Background(), CreateClientRequest{Name: "Acme", TaxID: "12-3456789"})
	require.NoError(t, err)

	name := "Acme Holdings"
	updated, err := svc.Update(context.Background(), c.ID, UpdateClientRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Acme Holdings", updated.Name)
	require.Equal(t, "12-3456789", updated.TaxID)
}

func TestUpdateUnknownClient(t *testing.T) {
	svc := NewService(newMockRepo())
	name := "Nobody"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateClientRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteClientWithInvoices(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), CreateClientRequest{Name: "Acme", TaxID: "12-3456789"})
	require.NoError(t, err)
	repo.referenced[c.ID] = true

	err = svc.Delete(context.Background(), c.ID)
	require.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
}
