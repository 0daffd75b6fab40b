package domain

import (
	"github.com/yungbote/seqmeta-backend/internal/domain/graphics"
	"github.com/yungbote/seqmeta-backend/internal/domain/samples"
	"github.com/yungbote/seqmeta-backend/internal/domain/schema"
	"github.com/yungbote/seqmeta-backend/internal/domain/user"
)

type User = user.User

type Sample = samples.Sample
type BioinfoAnalysisValue = samples.BioinfoAnalysisValue
type LineageValue = samples.LineageValue

type Schema = schema.Schema
type BioinfoAnalysisField = schema.BioinfoAnalysisField
type LineageField = schema.LineageField

type GraphicJSONData = graphics.GraphicJSONData

const MaxValueLength = samples.MaxValueLength

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Schema{},
		&BioinfoAnalysisField{},
		&LineageField{},
		&Sample{},
		&BioinfoAnalysisValue{},
		&LineageValue{},
		&GraphicJSONData{},
	}
}
