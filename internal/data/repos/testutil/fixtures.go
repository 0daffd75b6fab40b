package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedSchema registers a schema with the given bioinformatics and lineage
// property names.
func SeedSchema(tb testing.TB, ctx context.Context, tx *gorm.DB, name, version string, bioinfo, lineage []string) *types.Schema {
	tb.Helper()
	s := &types.Schema{
		ID:        uuid.New(),
		Name:      name,
		Version:   version,
		IsDefault: true,
	}
	for _, p := range bioinfo {
		s.BioinfoFields = append(s.BioinfoFields, &types.BioinfoAnalysisField{PropertyName: p})
	}
	for _, p := range lineage {
		s.LineageFields = append(s.LineageFields, &types.LineageField{PropertyName: p})
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed schema: %v", err)
	}
	return s
}

func SeedSample(tb testing.TB, ctx context.Context, tx *gorm.DB, s *types.Sample) *types.Sample {
	tb.Helper()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sample: %v", err)
	}
	return s
}

func SeedBioinfoValue(tb testing.TB, ctx context.Context, tx *gorm.DB, sampleID, fieldID uuid.UUID, value string) *types.BioinfoAnalysisValue {
	tb.Helper()
	v := &types.BioinfoAnalysisValue{SampleID: sampleID, BioinfoAnalysisFieldID: fieldID, Value: value}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed bioinfo value: %v", err)
	}
	return v
}

func SeedLineageValue(tb testing.TB, ctx context.Context, tx *gorm.DB, sampleID, fieldID uuid.UUID, value string) *types.LineageValue {
	tb.Helper()
	v := &types.LineageValue{SampleID: sampleID, LineageFieldID: fieldID, Value: value}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed lineage value: %v", err)
	}
	return v
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

// Date returns midnight UTC of the given day.
func Date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
