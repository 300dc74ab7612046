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

type MongoProfileService struct {
	client      *mongo.Client
	db          *mongo.Database
	profilesCol *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, mongoURI, dbName string) (*MongoProfileService, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("profiles")

	// One profile per user.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	log.Printf("MongoDB connected (profiles): db=%s", dbName)
	return &MongoProfileService{
		client:      client,
		db:          db,
		profilesCol: col,
	}, nil
}

func (s *MongoProfileService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *MongoProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	cur, err := s.profilesCol.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Profile, 0)
	for cur.Next(ctx) {
		var profile models.Profile
		if err := cur.Decode(&profile); err != nil {
			return nil, err
		}
		out = append(out, &profile)
	}
	return out, cur.Err()
}

func (s *MongoProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	set := bson.M{
		"company":         req.Company,
		"website":         req.Website,
		"location":        req.Location,
		"status":          req.Status,
		"skills":          req.SkillList(),
		"bio":             req.Bio,
		"github_username": req.GithubUserName,
		"social": bson.M{
			"youtube":   req.Youtube,
			"twitter":   req.Twitter,
			"facebook":  req.Facebook,
			"linkedin":  req.Linkedin,
			"instagram": req.Instagram,
		},
	}
	setOnInsert := bson.M{
		"_id":        uuid.New().String(),
		"user_id":    userID,
		"experience": []models.Experience{},
		"education":  []models.Education{},
		"created_at": time.Now(),
	}

	_, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	return s.GetByUserID(ctx, userID)
}

func (s *MongoProfileService) Delete(ctx context.Context, userID string) error {
	res, err := s.profilesCol.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	exp := models.Experience{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	return s.pushSubItem(ctx, userID, "experience", exp)
}

func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	return s.pullSubItem(ctx, userID, "experience", expID, ErrExperienceNotFound)
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	edu := models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	return s.pushSubItem(ctx, userID, "education", edu)
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	return s.pullSubItem(ctx, userID, "education", eduID, ErrEducationNotFound)
}

func (s *MongoProfileService) pushSubItem(ctx context.Context, userID, field string, item interface{}) (*models.Profile, error) {
	res, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{field: item}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}
	return s.GetByUserID(ctx, userID)
}

// pullSubItem removes the sub-item with the given id in a single conditional
// update: the filter requires the item to be present, so an unknown id never
// touches the array.
func (s *MongoProfileService) pullSubItem(ctx context.Context, userID, field, itemID string, notFound error) (*models.Profile, error) {
	res, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID, field + ".id": itemID},
		bson.M{"$pull": bson.M{field: bson.M{"id": itemID}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing profile from a missing sub-item.
		if _, err := s.GetByUserID(ctx, userID); err != nil {
			return nil, err
		}
		return nil, notFound
	}
	return s.GetByUserID(ctx, userID)
}
