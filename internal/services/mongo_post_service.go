package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/backend/internal/models"
)

type MongoPostService struct {
	client   *mongo.Client
	db       *mongo.Database
	postsCol *mongo.Collection
}

func NewMongoPostService(ctx context.Context, mongoURI, dbName string) (*MongoPostService, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("posts")

	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	log.Printf("MongoDB connected (posts): db=%s", dbName)
	return &MongoPostService{
		client:   client,
		db:       db,
		postsCol: col,
	}, nil
}

func (s *MongoPostService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoPostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Text:      req.Text,
		Name:      author.Name,
		AvatarURL: author.AvatarURL,
		Likes:     []models.Like{},
		CreatedAt: time.Now(),
	}

	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *MongoPostService) List(ctx context.Context) ([]*models.Post, error) {
	cur, err := s.postsCol.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Post, 0)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		out = append(out, &post)
	}
	return out, cur.Err()
}

func (s *MongoPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	_, err = s.postsCol.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

// Like appends the caller's like mark in a single conditional update: the
// filter excludes posts already liked by this user, so two concurrent likes
// cannot both land.
func (s *MongoPostService) Like(ctx context.Context, postID, userID string) ([]models.Like, error) {
	like := models.Like{
		ID:     uuid.New().String(),
		UserID: userID,
	}

	res, err := s.postsCol.UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes.user_id": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"likes": like}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyLiked
	}

	return s.likes(ctx, postID)
}

func (s *MongoPostService) Unlike(ctx context.Context, postID, userID string) ([]models.Like, error) {
	res, err := s.postsCol.UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes.user_id": userID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrNotYetLiked
	}

	return s.likes(ctx, postID)
}

func (s *MongoPostService) likes(ctx context.Context, postID string) ([]models.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}
