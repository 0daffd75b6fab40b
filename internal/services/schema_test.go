package services

import (
	"errors"
	"testing"
)

const relecovYAML = `
name: relecov
version: "2.0"
default: true
bioinfo_fields:
  - property: CT_value
    label: Ct
  - property: number_of_base_pairs_sequenced
  - property: analysis_date
lineage_fields:
  - property: lineage_name
  - property: lineage_algorithm_software_version
`

func TestParseSchemaDefinition(t *testing.T) {
	def, err := ParseSchemaDefinition([]byte(relecovYAML))
	if err != nil {
		t.Fatalf("ParseSchemaDefinition(yaml): %v", err)
	}
	if def.Name != "relecov" || def.Version != "2.0" || !def.Default {
		t.Fatalf("unexpected header: %+v", def)
	}
	if len(def.BioinfoFields) != 3 || len(def.LineageFields) != 2 {
		t.Fatalf("field counts: bioinfo=%d lineage=%d", len(def.BioinfoFields), len(def.LineageFields))
	}

	fromJSON, err := ParseSchemaDefinition([]byte(`{"name":"relecov","version":"1","bioinfo_fields":[{"property":"qc_test"}]}`))
	if err != nil {
		t.Fatalf("ParseSchemaDefinition(json): %v", err)
	}
	if fromJSON.BioinfoFields[0].Property != "qc_test" {
		t.Fatalf("json field: %+v", fromJSON.BioinfoFields)
	}
}

func TestSchemaDefinitionValidate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "  "},
		{name: "missing_version", raw: "name: x"},
		{name: "unknown_key", raw: "name: x\nversion: '1'\nfields: []"},
		{name: "cross_category_duplicate", raw: "name: x\nversion: '1'\nbioinfo_fields: [{property: Lineage}]\nlineage_fields: [{property: lineage}]"},
		{name: "same_category_duplicate", raw: "name: x\nversion: '1'\nbioinfo_fields: [{property: ct}, {property: CT}]"},
		{name: "reserved_sample_id", raw: "name: x\nversion: '1'\nbioinfo_fields: [{property: Sequencing_Sample_ID}]"},
		{name: "blank_property", raw: "name: x\nversion: '1'\nlineage_fields: [{property: ' '}]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSchemaDefinition([]byte(tc.raw))
			if !errors.Is(err, ErrSchemaInvalid) {
				t.Fatalf("want ErrSchemaInvalid, got %v", err)
			}
		})
	}
}

func TestSchemaServiceCreateAndResolve(t *testing.T) {
	env := newTestEnv(t)

	def, err := ParseSchemaDefinition([]byte(relecovYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	created, err := env.schemas.Create(env.ctx, def)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsDefault || len(created.BioinfoFields) != 3 {
		t.Fatalf("Create: unexpected row %+v", created)
	}

	if _, err := env.schemas.Create(env.ctx, def); !errors.Is(err, ErrSchemaExists) {
		t.Fatalf("duplicate Create: want ErrSchemaExists, got %v", err)
	}

	next := *def
	next.Version = "2.1"
	if _, err := env.schemas.Create(env.ctx, &next); err != nil {
		t.Fatalf("Create 2.1: %v", err)
	}

	resolved, err := env.schemas.Resolve(env.ctx, "", "")
	if err != nil {
		t.Fatalf("Resolve default: %v", err)
	}
	if resolved.Version != "2.1" {
		t.Fatalf("Resolve default: want 2.1, got %s", resolved.Version)
	}
	old, err := env.schemas.Resolve(env.ctx, "relecov", "2.0")
	if err != nil {
		t.Fatalf("Resolve 2.0: %v", err)
	}
	if old.IsDefault {
		t.Fatalf("2.0 should no longer be default")
	}
	if _, err := env.schemas.Get(env.ctx, "relecov", "9"); !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("Get missing: want ErrSchemaNotFound, got %v", err)
	}

	list, err := env.schemas.List(env.ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: rows=%d err=%v", len(list), err)
	}
}

func TestSchemaClassifier(t *testing.T) {
	env := newTestEnv(t)
	def, _ := ParseSchemaDefinition([]byte(relecovYAML))
	s, err := env.schemas.Create(env.ctx, def)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c := NewSchemaClassifier(s)
	cases := map[string]FieldCategory{
		"ct_value":     FieldBioinfo,
		"CT_VALUE":     FieldBioinfo,
		" CT_value ":   FieldBioinfo,
		"Lineage_Name": FieldLineage,
		"host_age":     FieldUnrecognized,
	}
	for field, want := range cases {
		if got := c.Classify(field); got != want {
			t.Errorf("Classify(%q)=%s, want %s", field, got, want)
		}
	}
}
