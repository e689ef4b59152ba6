package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const (
	complaintKeyPrefix = "complaint:"
	complaintIndexKey  = "complaints:created"
	adminPasswordKey   = "settings:admin_password"
)

// RedisStore persists complaints as one document (hash) per record plus a
// sorted-set index scored by creation time. Backend faults never surface as
// redis errors: every operation re-signals them as a storage error with an
// operation-specific message.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an established client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Name identifies the backend.
func (s *RedisStore) Name() string { return "redis" }

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() {
	_ = s.client.Close()
}

func complaintKey(id string) string {
	return complaintKeyPrefix + id
}

// ListComplaints reads ids from the creation-time index in descending score
// order, then loads each document.
func (s *RedisStore) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	ids, err := s.client.ZRevRange(ctx, complaintIndexKey, 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to fetch complaints from database", err)
	}

	result := make([]domain.Complaint, 0, len(ids))
	for _, id := range ids {
		doc, err := s.client.HGetAll(ctx, complaintKey(id)).Result()
		if err != nil {
			return nil, apperrors.NewStorageError("Failed to fetch complaints from database", err)
		}
		if len(doc) == 0 {
			// stale index entry, the document is gone
			continue
		}
		result = append(result, complaintFromDoc(id, doc))
	}
	return result, nil
}

// GetComplaint loads a single document.
func (s *RedisStore) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	doc, err := s.client.HGetAll(ctx, complaintKey(id)).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to fetch complaint from database", err)
	}
	if len(doc) == 0 {
		return nil, ErrNotFound
	}
	c := complaintFromDoc(id, doc)
	return &c, nil
}

// CreateComplaint writes the document and its index entry atomically.
func (s *RedisStore) CreateComplaint(ctx context.Context, input domain.NewComplaint) (*domain.Complaint, error) {
	now := time.Now().UTC()
	c := domain.Complaint{
		ID:          uuid.NewString(),
		StudentName: input.StudentName,
		Department:  input.Department,
		IssueTitle:  input.IssueTitle,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, complaintKey(c.ID), complaintDoc(c))
	pipe.ZAdd(ctx, complaintIndexKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: c.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, apperrors.NewStorageError("Failed to create complaint in database", err)
	}
	return &c, nil
}

// UpdateComplaintStatus is a read-then-write with per-document atomicity only;
// concurrent updates are last-write-wins.
func (s *RedisStore) UpdateComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	doc, err := s.client.HGetAll(ctx, complaintKey(id)).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to update complaint in database", err)
	}
	if len(doc) == 0 {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	err = s.client.HSet(ctx, complaintKey(id), map[string]any{
		"status":    string(status),
		"updatedAt": now.Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to update complaint in database", err)
	}

	c := complaintFromDoc(id, doc)
	c.Status = status
	c.UpdatedAt = now
	return &c, nil
}

// DeleteComplaint removes the document and its index entry.
func (s *RedisStore) DeleteComplaint(ctx context.Context, id string) (bool, error) {
	pipe := s.client.TxPipeline()
	delCmd := pipe.Del(ctx, complaintKey(id))
	pipe.ZRem(ctx, complaintIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, apperrors.NewStorageError("Failed to delete complaint from database", err)
	}
	return delCmd.Val() > 0, nil
}

// CleanupOldResolved scans every document and removes resolved complaints
// older than the cutoff.
func (s *RedisStore) CleanupOldResolved(ctx context.Context, daysOld int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld)

	ids, err := s.client.ZRange(ctx, complaintIndexKey, 0, -1).Result()
	if err != nil {
		return 0, apperrors.NewStorageError("Failed to cleanup old complaints from database", err)
	}

	removed := 0
	for _, id := range ids {
		doc, err := s.client.HGetAll(ctx, complaintKey(id)).Result()
		if err != nil {
			return removed, apperrors.NewStorageError("Failed to cleanup old complaints from database", err)
		}
		if len(doc) == 0 {
			continue
		}
		if domain.ComplaintStatus(doc["status"]) != domain.StatusResolved {
			continue
		}
		if !decodeTimestamp(doc["updatedAt"]).Before(cutoff) {
			continue
		}

		pipe := s.client.TxPipeline()
		pipe.Del(ctx, complaintKey(id))
		pipe.ZRem(ctx, complaintIndexKey, id)
		if _, err := pipe.Exec(ctx); err != nil {
			return removed, apperrors.NewStorageError("Failed to cleanup old complaints from database", err)
		}
		removed++
	}
	return removed, nil
}

// AdminPassword returns the stored admin secret.
func (s *RedisStore) AdminPassword(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, adminPasswordKey).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", apperrors.NewStorageError("Failed to fetch settings from database", err)
	}
	return val, nil
}

// SetAdminPassword stores the admin secret.
func (s *RedisStore) SetAdminPassword(ctx context.Context, password string) error {
	if err := s.client.Set(ctx, adminPasswordKey, password, 0).Err(); err != nil {
		return apperrors.NewStorageError("Failed to update settings in database", err)
	}
	return nil
}

func complaintDoc(c domain.Complaint) map[string]any {
	return map[string]any{
		"studentName": c.StudentName,
		"department":  c.Department,
		"issueTitle":  c.IssueTitle,
		"description": c.Description,
		"status":      string(c.Status),
		"createdAt":   c.CreatedAt.Format(time.RFC3339Nano),
		"updatedAt":   c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func complaintFromDoc(id string, doc map[string]string) domain.Complaint {
	return domain.Complaint{
		ID:          id,
		StudentName: doc["studentName"],
		Department:  doc["department"],
		IssueTitle:  doc["issueTitle"],
		Description: doc["description"],
		Status:      domain.ComplaintStatus(doc["status"]),
		CreatedAt:   decodeTimestamp(doc["createdAt"]),
		UpdatedAt:   decodeTimestamp(doc["updatedAt"]),
	}
}

// decodeTimestamp tolerates the encodings older documents carry: epoch
// seconds, epoch milliseconds and RFC3339 text. Absent or unparseable values
// fall back to the current time.
func decodeTimestamp(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		if epoch > 1_000_000_000_000 {
			return time.UnixMilli(epoch).UTC()
		}
		return time.Unix(epoch, 0).UTC()
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
