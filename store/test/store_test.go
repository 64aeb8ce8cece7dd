package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/sample"
	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/gclaussn/go-bpmn-schema/validation"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	stores, storeTypes := mustCreateStores(t)
	for _, s := range stores {
		defer s.Shutdown()
	}

	for i, s := range stores {
		t.Run(storeTypes[i]+"save", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// given
			d := mustCreateInvalidDiagram(t, "save")
			d.Name = "Save"

			// when
			record, err := s.Save(context.Background(), store.SaveCmd{Diagram: d})
			require.NoError(err)

			// then
			assert.Equal(store.Record{
				DiagramId: "save",
				Name:      "Save",
				Version:   model.DefaultVersion,
				Revision:  1,
				Errors:    1,
				Warnings:  2,
				Infos:     0,
				SavedAt:   record.SavedAt,
			}, record)

			assert.False(record.SavedAt.IsZero())
			assert.Equal(time.UTC, record.SavedAt.Location())
			assert.Equal("save@1", record.String())
		})

		t.Run(storeTypes[i]+"save increases revision", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// given
			d := mustCreateDiagram(t, "revision", "Revision")
			mustSave(t, s, d)

			// when
			d.Name = "Revision 2"
			record, err := s.Save(context.Background(), store.SaveCmd{Diagram: d, Revision: 1})
			require.NoError(err)

			// then
			assert.Equal(2, record.Revision)
			assert.Equal("Revision 2", record.Name)

			// when
			record, err = s.Save(context.Background(), store.SaveCmd{Diagram: d})
			require.NoError(err)

			// then
			assert.Equal(3, record.Revision)
		})

		t.Run(storeTypes[i]+"returns error when revision does not match", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// given
			d := mustCreateDiagram(t, "conflict", "")
			mustSave(t, s, d)
			mustSave(t, s, d)

			// when
			_, err := s.Save(context.Background(), store.SaveCmd{Diagram: d, Revision: 1})
			require.Error(err)

			// then
			var modelErr model.Error
			require.True(errors.As(err, &modelErr))
			assert.Equal(model.ErrorConflict, modelErr.Type)
			assert.Equal("diagram conflict has revision 2, but revision 1 is expected", modelErr.Detail)

			_, record, err := s.Load(context.Background(), "conflict")
			require.NoError(err)
			assert.Equal(2, record.Revision)
		})

		t.Run(storeTypes[i]+"returns error when revision is expected, but diagram is not stored", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// when
			_, err := s.Save(context.Background(), store.SaveCmd{Diagram: mustCreateDiagram(t, "not-stored", ""), Revision: 1})
			require.Error(err)

			// then
			var modelErr model.Error
			require.True(errors.As(err, &modelErr))
			assert.Equal(model.ErrorConflict, modelErr.Type)
			assert.Equal("diagram not-stored is not stored, but revision 1 is expected", modelErr.Detail)
		})

		t.Run(storeTypes[i]+"returns error when command is invalid", func(t *testing.T) {
			assert := assert.New(t)

			_, err := s.Save(context.Background(), store.SaveCmd{})
			assert.IsTypef(model.Error{}, err, "expected model error")
			assert.Equal(model.ErrorValidation, err.(model.Error).Type)

			_, err = s.Save(context.Background(), store.SaveCmd{Diagram: mustCreateDiagram(t, "negative", ""), Revision: -1})
			assert.IsTypef(model.Error{}, err, "expected model error")
			assert.Equal(model.ErrorValidation, err.(model.Error).Type)
		})
	}
}

func TestSaveRejectInvalid(t *testing.T) {
	stores, storeTypes := mustCreateStores(t, func(o *store.Options) {
		o.RejectInvalid = true
	})
	for _, s := range stores {
		defer s.Shutdown()
	}

	for i, s := range stores {
		t.Run(storeTypes[i]+"rejects diagram with errors", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// when
			_, err := s.Save(context.Background(), store.SaveCmd{Diagram: mustCreateInvalidDiagram(t, "invalid")})
			require.Error(err)

			// then
			var modelErr model.Error
			require.True(errors.As(err, &modelErr))
			assert.Equal(model.ErrorValidation, modelErr.Type)
			assert.Equal("diagram invalid has 1 validation errors", modelErr.Detail)
			assert.Equal([]model.ErrorCause{
				{Pointer: "invalid_process", Type: validation.RuleStartEvent, Detail: "Process must have at least one start event"},
			}, modelErr.Causes)

			_, _, err = s.Load(context.Background(), "invalid")
			assert.IsTypef(model.Error{}, err, "expected model error")
			assert.Equal(model.ErrorNotFound, err.(model.Error).Type)
		})

		t.Run(storeTypes[i]+"accepts diagram without errors", func(t *testing.T) {
			d, err := sample.OrderFulfillment()
			require.NoError(t, err)

			record, err := s.Save(context.Background(), store.SaveCmd{Diagram: d})
			require.NoError(t, err)
			assert.Equal(t, 0, record.Errors)
		})
	}
}

func TestLoad(t *testing.T) {
	stores, storeTypes := mustCreateStores(t)
	for _, s := range stores {
		defer s.Shutdown()
	}

	for i, s := range stores {
		t.Run(storeTypes[i]+"load", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// given
			d, err := sample.PurchaseOrderCollaboration()
			require.NoError(err)

			saved := mustSave(t, s, d)

			// when
			loaded, record, err := s.Load(context.Background(), d.Id)
			require.NoError(err)

			// then
			assert.Equal(saved, record)

			if diff := cmp.Diff(codec.NewDocument(d), codec.NewDocument(loaded), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("unexpected document (-want +got):\n%s", diff)
			}
		})

		t.Run(storeTypes[i]+"stored diagram is not affected by modifications", func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)

			// given
			d := mustCreateDiagram(t, "isolation", "Isolation")
			mustSave(t, s, d)

			loaded, _, err := s.Load(context.Background(), "isolation")
			require.NoError(err)

			// when
			d.Name = "Modified"
			loaded.Name = "Modified"

			// then
			loaded, record, err := s.Load(context.Background(), "isolation")
			require.NoError(err)
			assert.Equal("Isolation", loaded.Name)
			assert.Equal("Isolation", record.Name)
		})

		t.Run(storeTypes[i]+"returns error when diagram not exists", func(t *testing.T) {
			assert := assert.New(t)

			_, _, err := s.Load(context.Background(), "not-existing")
			assert.IsTypef(model.Error{}, err, "expected model error")

			modelErr := err.(model.Error)
			assert.Equal(model.ErrorNotFound, modelErr.Type)
			assert.Equal("diagram not-existing could not be found", modelErr.Detail)
		})
	}
}

func TestDelete(t *testing.T) {
	stores, storeTypes := mustCreateStores(t)
	for _, s := range stores {
		defer s.Shutdown()
	}

	for i, s := range stores {
		t.Run(storeTypes[i]+"delete", func(t *testing.T) {
			assert := assert.New(t)

			// given
			mustSave(t, s, mustCreateDiagram(t, "delete", ""))

			// when
			err := s.Delete(context.Background(), "delete")
			assert.NoError(err)

			// then
			_, _, err = s.Load(context.Background(), "delete")
			assert.IsTypef(model.Error{}, err, "expected model error")
			assert.Equal(model.ErrorNotFound, err.(model.Error).Type)

			// when saved again
			record := mustSave(t, s, mustCreateDiagram(t, "delete", ""))

			// then
			assert.Equal(1, record.Revision)
		})

		t.Run(storeTypes[i]+"returns error when diagram not exists", func(t *testing.T) {
			err := s.Delete(context.Background(), "not-existing")
			assert.IsTypef(t, model.Error{}, err, "expected model error")
			assert.Equal(t, model.ErrorNotFound, err.(model.Error).Type)
		})
	}
}

func TestQuery(t *testing.T) {
	stores, storeTypes := mustCreateStores(t)
	for _, s := range stores {
		defer s.Shutdown()
	}

	diagramIds := func(records []store.Record) []string {
		ids := make([]string, len(records))
		for i, record := range records {
			ids[i] = record.DiagramId
		}
		return ids
	}

	for i, s := range stores {
		d3 := mustCreateDiagram(t, "q3", "Order Handling")
		d3.Version = "2.0"

		mustSave(t, s, mustCreateDiagram(t, "q2", "Invoice"))
		mustSave(t, s, d3)
		mustSave(t, s, mustCreateDiagram(t, "q1", "Purchase order"))
		mustSave(t, s, mustCreateInvalidDiagram(t, "q4"))

		t.Run(storeTypes[i]+"all", func(t *testing.T) {
			records, err := s.Query(context.Background(), store.Criteria{})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, diagramIds(records))
		})

		t.Run(storeTypes[i]+"by diagram ID", func(t *testing.T) {
			records, err := s.Query(context.Background(), store.Criteria{DiagramId: "q2"})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q2"}, diagramIds(records))
		})

		t.Run(storeTypes[i]+"by name", func(t *testing.T) {
			records, err := s.Query(context.Background(), store.Criteria{Name: "ORDER"})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q1", "q3"}, diagramIds(records))

			records, err = s.Query(context.Background(), store.Criteria{Name: "%"})
			assert.NoError(t, err)
			assert.Empty(t, records)
		})

		t.Run(storeTypes[i]+"by version", func(t *testing.T) {
			records, err := s.Query(context.Background(), store.Criteria{Version: "2.0"})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q3"}, diagramIds(records))
		})

		t.Run(storeTypes[i]+"by errors", func(t *testing.T) {
			hasErrors := true

			records, err := s.Query(context.Background(), store.Criteria{HasErrors: &hasErrors})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q4"}, diagramIds(records))

			hasErrors = false

			records, err = s.Query(context.Background(), store.Criteria{HasErrors: &hasErrors})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q1", "q2", "q3"}, diagramIds(records))
		})

		t.Run(storeTypes[i]+"with limit and offset", func(t *testing.T) {
			records, err := s.Query(context.Background(), store.Criteria{Limit: 2})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q1", "q2"}, diagramIds(records))

			records, err = s.Query(context.Background(), store.Criteria{Limit: 2, Offset: 3})
			assert.NoError(t, err)
			assert.Equal(t, []string{"q4"}, diagramIds(records))

			records, err = s.Query(context.Background(), store.Criteria{Offset: 4})
			assert.NoError(t, err)
			assert.Empty(t, records)
		})

		t.Run(storeTypes[i]+"returns error when criteria is invalid", func(t *testing.T) {
			_, err := s.Query(context.Background(), store.Criteria{Offset: -1})
			assert.IsType(t, model.Error{}, err)
			assert.Equal(t, model.ErrorValidation, err.(model.Error).Type)
		})
	}
}
