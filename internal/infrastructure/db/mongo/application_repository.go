package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

const collectionApplications = "applications"

// ApplicationRepository implements ports.ApplicationRepository using MongoDB.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type mongoApplication struct {
	ID              primitive.ObjectID       `bson:"_id,omitempty"`
	ApplicantID     string                   `bson:"applicant_id"`
	FullName        string                   `bson:"fullname"`
	Email           string                   `bson:"email"`
	Document        domain.Document          `bson:"document"`
	Trade           string                   `bson:"trade"`
	Status          domain.ApplicationStatus `bson:"status"`
	Feedback        string                   `bson:"feedback"`
	ReviewedBy      string                   `bson:"reviewed_by,omitempty"`
	RejectionReason string                   `bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time                `bson:"created_at"`
	UpdatedAt       time.Time                `bson:"updated_at"`
}

func (ma *mongoApplication) toDomain() *domain.Application {
	return &domain.Application{
		ID:              ma.ID.Hex(),
		ApplicantID:     ma.ApplicantID,
		FullName:        ma.FullName,
		Email:           ma.Email,
		Document:        ma.Document,
		Trade:           ma.Trade,
		Status:          ma.Status,
		Feedback:        ma.Feedback,
		ReviewedBy:      ma.ReviewedBy,
		RejectionReason: ma.RejectionReason,
		CreatedAt:       ma.CreatedAt,
		UpdatedAt:       ma.UpdatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		ApplicantID: app.ApplicantID,
		FullName:    app.FullName,
		Email:       app.Email,
		Document:    app.Document,
		Trade:       app.Trade,
		Status:      app.Status,
		Feedback:    app.Feedback,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	var ma mongoApplication
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ApplicationRepository) FindPendingByApplicant(ctx context.Context, applicantID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"applicant_id": applicantID, "status": domain.ApplicationPending}

	var ma mongoApplication
	if err := r.col.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find pending application: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"applicant_id": applicantID})
}

func (r *ApplicationRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Application, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var apps []*domain.Application
	for cur.Next(ctx) {
		var ma mongoApplication
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		apps = append(apps, ma.toDomain())
	}
	return apps, cur.Err()
}

// Resolve applies the pending -> approved|rejected transition as a single
// conditional update, so two racing reviews cannot both win.
func (r *ApplicationRepository) Resolve(ctx context.Context, id string, status domain.ApplicationStatus, feedback, reviewerID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	filter := bson.M{"_id": oid, "status": domain.ApplicationPending}
	update := bson.M{"$set": bson.M{
		"status":      status,
		"feedback":    feedback,
		"reviewed_by": reviewerID,
		"updated_at":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoApplication
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ma)
	if err == nil {
		return ma.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("resolve application: %w", err)
	}

	// No pending match: distinguish a missing record from an already
	// resolved one.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrApplicationResolved
}

// EnsureIndexes creates the lookup indexes on the applications collection.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "applicant_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
