package files

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection holding catalog documents.
const CollectionName = "files"

// fileDocument stores the root parent as the number 0 and any other parent
// as an ObjectID, so both shapes decode into ParentID.
type fileDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	ParentID  any                `bson:"parentId"`
	IsPublic  bool               `bson:"isPublic"`
	LocalPath string             `bson:"localPath,omitempty"`
}

func (d *fileDocument) toModel() *models.FileRecord {
	rec := &models.FileRecord{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Type:      models.FileType(d.Type),
		IsPublic:  d.IsPublic,
		LocalPath: d.LocalPath,
	}
	if oid, ok := d.ParentID.(primitive.ObjectID); ok {
		rec.Parent = models.InFolder(oid.Hex())
	}
	return rec
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, rec *models.FileRecord) (*models.FileRecord, error) {
	userID, err := primitive.ObjectIDFromHex(rec.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	var parent any = int32(0)
	if !rec.Parent.IsRoot() {
		pid, err := primitive.ObjectIDFromHex(rec.Parent.ID())
		if err != nil {
			return nil, common.ErrInvalidParent
		}
		err = r.coll.FindOne(ctx, bson.M{"_id": pid, "type": string(models.FileTypeFolder)}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrInvalidParent
		}
		if err != nil {
			return nil, common.Unavailable("mongo error", err)
		}
		parent = pid
	}

	res, err := r.coll.InsertOne(ctx, fileDocument{
		UserID:    userID,
		Name:      rec.Name,
		Type:      string(rec.Type),
		ParentID:  parent,
		IsPublic:  rec.IsPublic,
		LocalPath: rec.LocalPath,
	})
	if err != nil {
		return nil, common.Unavailable("mongo error", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, common.ErrorInternal
	}
	rec.ID = id.Hex()
	return rec, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc fileDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, common.Unavailable("mongo error", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) ListChildren(ctx context.Context, userID string, parent models.ParentRef) ([]*models.FileRecord, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{"userId": uid, "parentId": 0}
	if !parent.IsRoot() {
		pid, err := primitive.ObjectIDFromHex(parent.ID())
		if err != nil {
			return nil, nil
		}
		filter["parentId"] = pid
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, common.Unavailable("mongo error", err)
	}

	var docs []fileDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, common.Unavailable("mongo error", err)
	}

	result := make([]*models.FileRecord, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toModel())
	}
	return result, nil
}

func (r *MongoRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isPublic": isPublic}})
	if err != nil {
		return common.Unavailable("mongo error", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, common.Unavailable("mongo error", err)
	}
	return n, nil
}
