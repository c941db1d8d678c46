package tests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/common/domain"
)

type mockUserRepository struct {
	store map[uuid.UUID]*model.User
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockUserRepository) Create(user *model.User) error {
	clone := *user
	m.store[user.ID] = &clone
	return nil
}
func (m *mockUserRepository) Update(user *model.User) error {
	if _, ok := m.store[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}
func (m *mockUserRepository) Find(id uuid.UUID) (*model.User, error) {
	if user, ok := m.store[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, model.ErrUserNotFound
}
func (m *mockUserRepository) FindByEmail(email string) (*model.User, error) {
	for _, user := range m.store {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type mockProfileRepository struct {
	store map[uuid.UUID]*model.Profile
}

func (m *mockProfileRepository) Create(profile *model.Profile) error {
	clone := *profile
	m.store[profile.ID] = &clone
	return nil
}
func (m *mockProfileRepository) Update(profile *model.Profile) error {
	if _, ok := m.store[profile.ID]; !ok {
		return model.ErrProfileNotFound
	}
	clone := *profile
	m.store[profile.ID] = &clone
	return nil
}
func (m *mockProfileRepository) Find(id uuid.UUID) (*model.Profile, error) {
	if profile, ok := m.store[id]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, model.ErrProfileNotFound
}

type mockAddressRepository struct {
	store map[uuid.UUID]*model.Address
}

func (m *mockAddressRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockAddressRepository) Create(address *model.Address) error {
	if address.IsDefault {
		m.clearDefault(address.UserID)
	}
	clone := *address
	m.store[address.ID] = &clone
	return nil
}
func (m *mockAddressRepository) Update(address *model.Address) error {
	if _, err := m.Find(address.UserID, address.ID); err != nil {
		return err
	}
	return m.Create(address)
}
func (m *mockAddressRepository) Delete(ownerID, id uuid.UUID) error {
	if _, err := m.Find(ownerID, id); err != nil {
		return err
	}
	delete(m.store, id)
	return nil
}
func (m *mockAddressRepository) Find(ownerID, id uuid.UUID) (*model.Address, error) {
	if address, ok := m.store[id]; ok && address.UserID == ownerID {
		clone := *address
		return &clone, nil
	}
	return nil, model.ErrAddressNotFound
}
func (m *mockAddressRepository) ListByOwner(ownerID uuid.UUID) ([]model.Address, error) {
	var result []model.Address
	for _, address := range m.store {
		if address.UserID == ownerID {
			result = append(result, *address)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}
func (m *mockAddressRepository) SetDefault(ownerID, id uuid.UUID) error {
	if _, err := m.Find(ownerID, id); err != nil {
		return err
	}
	m.clearDefault(ownerID)
	m.store[id].IsDefault = true
	return nil
}
func (m *mockAddressRepository) clearDefault(ownerID uuid.UUID) {
	for _, address := range m.store {
		if address.UserID == ownerID {
			address.IsDefault = false
		}
	}
}

type mockOrderRepository struct {
	orders []model.Order
}

func (m *mockOrderRepository) Find(ownerID, id uuid.UUID) (*model.Order, error) {
	for _, order := range m.orders {
		if order.ID == id && order.UserID == ownerID {
			clone := order
			return &clone, nil
		}
	}
	return nil, model.ErrOrderNotFound
}
func (m *mockOrderRepository) ListByOwner(ownerID uuid.UUID) ([]model.Order, error) {
	var result []model.Order
	for _, order := range m.orders {
		if order.UserID == ownerID {
			result = append(result, order)
		}
	}
	return result, nil
}

type mockPasswordManager struct{}

func (m *mockPasswordManager) Hash(pwd string) (string, error) {
	if pwd == "" {
		return "", errors.New("empty password")
	}
	return fmt.Sprintf("%s-hashed", pwd), nil
}
func (m *mockPasswordManager) Check(hashed, pwd string) (bool, error) {
	return hashed == fmt.Sprintf("%s-hashed", pwd), nil
}

// mockTokenIssuer hands out "token-<n>" strings.
type mockTokenIssuer struct {
	issued map[string]model.Session
}

func (m *mockTokenIssuer) Issue(user *model.User) (string, model.Session, error) {
	token := fmt.Sprintf("token-%d", len(m.issued)+1)
	session := model.Session{UserID: user.ID, Email: user.Email, TokenID: token, ExpiresAt: time.Now().Add(time.Hour)}
	m.issued[token] = session
	return token, session, nil
}
func (m *mockTokenIssuer) Parse(token string) (model.Session, error) {
	if session, ok := m.issued[token]; ok {
		return session, nil
	}
	return model.Session{}, errors.New("malformed token")
}

type mockRevocationList struct {
	revoked map[string]time.Time
}

func (m *mockRevocationList) Revoke(tokenID string, until time.Time) { m.revoked[tokenID] = until }
func (m *mockRevocationList) IsRevoked(tokenID string) bool {
	_, ok := m.revoked[tokenID]
	return ok
}

type mockStorage struct {
	buckets   []string
	objects   map[string][]byte
	uploadErr error
}

func (m *mockStorage) Buckets(_ context.Context) ([]string, error) { return m.buckets, nil }
func (m *mockStorage) Upload(_ context.Context, bucket, key, _ string, body io.Reader, _ bool) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[bucket+"/"+key] = data
	return key, nil
}
func (m *mockStorage) PublicURL(bucket, key string) string {
	return "https://cdn.example.com/" + bucket + "/" + key
}

type mockEventDispatcher struct {
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}
func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
