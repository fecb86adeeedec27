package repository

import (
	"context"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"
)

const usersEmailIndex = "email-index"

type userItem struct {
	ID           string `dynamodbav:"id"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// UserDynamoRepository persists operator accounts.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: email-index (PK: email), e-mails stored lowercased
type UserDynamoRepository struct {
	t table
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoDBAPI, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	it := toUserItem(u)
	if err := r.t.create(ctx, it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var it userItem
	ok, err := r.t.get(ctx, id, &it)
	if err != nil || !ok {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	items, err := queryIndex[userItem](ctx, r.t, usersEmailIndex, "email", normalizeEmail(email))
	if err != nil {
		return entities.User{}, err
	}
	if len(items) == 0 {
		return entities.User{}, nil
	}
	return fromUserItem(items[0]), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:           u.ID,
		Email:        normalizeEmail(u.Email),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    formatTime(u.CreatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:           it.ID,
		Email:        it.Email,
		Name:         it.Name,
		PasswordHash: it.PasswordHash,
		CreatedAt:    parseTime(it.CreatedAt),
	}
}
