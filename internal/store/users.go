package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Bajrangipanjiyar/studio/internal/models"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc struct {
		ID       interface{} `bson:"_id"`
		Username string      `bson:"username"`
		Password string      `bson:"password"`
	}
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &models.User{
		ID:       fmt.Sprint(doc.ID),
		Username: doc.Username,
		Password: doc.Password,
	}, nil
}

// CreateUser is mainly for seeding the initial admin via cmd/cli.
func (s *Store) CreateUser(ctx context.Context, username, hashedPassword string) error {
	_, err := s.users.InsertOne(ctx, bson.M{
		"username": username,
		"password": hashedPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
