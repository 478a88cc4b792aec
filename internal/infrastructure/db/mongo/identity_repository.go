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

	"github.com/hcportal/leave-portal/internal/core/domain"
)

const collectionUsers = "users"

// IdentityRepository stores identities in the users collection, keyed by a
// unique employee_id.
type IdentityRepository struct {
	col *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{col: db.Collection(collectionUsers)}
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID   string             `bson:"employee_id"`
	FirstName    string             `bson:"first_name"`
	MiddleName   string             `bson:"middle_name,omitempty"`
	LastName     string             `bson:"last_name"`
	Email        string             `bson:"email,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	SupervisorID string             `bson:"supervisor_id,omitempty"`
	JobTitle     string             `bson:"job_title,omitempty"`
	Nationality  string             `bson:"nationality,omitempty"`
	GosiType     string             `bson:"gosi_type,omitempty"`
	StoreCode    string             `bson:"store_code,omitempty"`
	IqamaNo      string             `bson:"iqama_no,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func toDocument(i *domain.Identity) mongoIdentity {
	doc := mongoIdentity{
		EmployeeID:   i.EmployeeID,
		FirstName:    i.FirstName,
		MiddleName:   i.MiddleName,
		LastName:     i.LastName,
		Email:        i.Email,
		PasswordHash: i.PasswordHash,
		Role:         string(i.Role),
		JobTitle:     i.JobTitle,
		Nationality:  i.Nationality,
		GosiType:     string(i.GosiType),
		StoreCode:    i.StoreCode,
		IqamaNo:      i.IqamaNo,
		CreatedAt:    i.CreatedAt.Unix(),
		UpdatedAt:    i.UpdatedAt.Unix(),
	}
	if i.SupervisorID != nil {
		doc.SupervisorID = *i.SupervisorID
	}
	return doc
}

func (d mongoIdentity) toDomain() *domain.Identity {
	i := &domain.Identity{
		ID:           d.ID.Hex(),
		EmployeeID:   d.EmployeeID,
		FirstName:    d.FirstName,
		MiddleName:   d.MiddleName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		JobTitle:     d.JobTitle,
		Nationality:  d.Nationality,
		GosiType:     domain.GosiType(d.GosiType),
		StoreCode:    d.StoreCode,
		IqamaNo:      d.IqamaNo,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
	if d.SupervisorID != "" {
		sup := d.SupervisorID
		i.SupervisorID = &sup
	}
	return i
}

// FindByEmployeeID looks up an identity by its exact employee id.
func (r *IdentityRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"employee_id": employeeID})
}

// FindByID looks up an identity by its hex object id. Malformed ids are
// reported as not found.
func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	var doc mongoIdentity
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts a new identity and returns it with its assigned id.
func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toDocument(identity))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeIDExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	created := *identity
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// InsertIfAbsent upserts with $setOnInsert, so an existing document with the
// same employee id is never modified. It reports whether a document was
// inserted.
func (r *IdentityRepository) InsertIfAbsent(ctx context.Context, identity *domain.Identity) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"employee_id": identity.EmployeeID},
		bson.M{"$setOnInsert": toDocument(identity)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// A concurrent upsert of the same employee id lost the race.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("upsert identity: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

// ListByRole returns every identity holding role.
func (r *IdentityRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Identity, error) {
	return r.list(ctx, bson.M{"role": string(role)})
}

// ListBySupervisor returns the direct reports of supervisorID.
func (r *IdentityRepository) ListBySupervisor(ctx context.Context, supervisorID string) ([]*domain.Identity, error) {
	return r.list(ctx, bson.M{"supervisor_id": supervisorID})
}

func (r *IdentityRepository) list(ctx context.Context, filter bson.M) ([]*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoIdentity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}

	out := make([]*domain.Identity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// DeleteAll removes every identity and returns how many were deleted.
func (r *IdentityRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete identities: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique employee_id index and the lookup indexes
// used by the supervisor mapping and team listing.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "supervisor_id", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure identity indexes: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
