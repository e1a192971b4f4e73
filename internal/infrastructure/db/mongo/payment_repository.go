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

const collectionPayments = "payments"

// PaymentRepository implements ports.PaymentRepository using MongoDB.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type mongoPayment struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	PayerID     string               `bson:"payer_id"`
	WorkerID    string               `bson:"worker_id"`
	Amount      float64              `bson:"amount"`
	Currency    string               `bson:"currency"`
	Reference   string               `bson:"reference"`
	Status      domain.PaymentStatus `bson:"status"`
	GatewayData map[string]any       `bson:"gateway_data,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (mp *mongoPayment) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:          mp.ID.Hex(),
		PayerID:     mp.PayerID,
		WorkerID:    mp.WorkerID,
		Amount:      mp.Amount,
		Currency:    mp.Currency,
		Reference:   mp.Reference,
		Status:      mp.Status,
		GatewayData: mp.GatewayData,
		CreatedAt:   mp.CreatedAt,
		UpdatedAt:   mp.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPayment{
		PayerID:   p.PayerID,
		WorkerID:  p.WorkerID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Reference: p.Reference,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPayment
	if err := r.col.FindOne(ctx, bson.M{"reference": reference}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return mp.toDomain(), nil
}

// Resolve applies the pending -> success|failed transition as a single
// conditional update (compare-and-set on status). A record that is already
// terminal is returned unchanged with applied=false, so the verify and
// webhook paths converge without flapping.
func (r *PaymentRepository) Resolve(ctx context.Context, reference string, status domain.PaymentStatus, gatewayData map[string]any) (*domain.Payment, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if gatewayData != nil {
		set["gateway_data"] = gatewayData
	}

	filter := bson.M{"reference": reference, "status": domain.PaymentPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoPayment
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&mp)
	if err == nil {
		return mp.toDomain(), true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("resolve payment: %w", err)
	}

	// Already terminal, or no such reference.
	existing, findErr := r.FindByReference(ctx, reference)
	if findErr != nil {
		return nil, false, findErr
	}
	return existing, false, nil
}

func (r *PaymentRepository) ListByPayer(ctx context.Context, payerID string) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{"payer_id": payerID})
}

func (r *PaymentRepository) ListSuccessByWorker(ctx context.Context, workerID string) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{"worker_id": workerID, "status": domain.PaymentSuccess})
}

func (r *PaymentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var mp mongoPayment
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, mp.toDomain())
	}
	return payments, cur.Err()
}

// EnsureIndexes creates the unique reference index and lookup indexes on the
// payments collection.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "payer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
