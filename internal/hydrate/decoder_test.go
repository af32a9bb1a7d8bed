package hydrate_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lucasSanto5s/LojaOnline/internal/hydrate"
)

type cartDoc struct {
	Items []cartEntry `json:"items"`
}

type cartEntry struct {
	ID  int `json:"id"`
	Qty int `json:"qty"`
}

func TestDecodePlainDocument(t *testing.T) {
	dec := hydrate.NewDecoder[cartDoc]()

	doc, err := dec.Decode(hydrate.Context{Key: "cart"}, []byte(`{"items":[{"id":1,"qty":2}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Items) != 1 || doc.Items[0].Qty != 2 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestDecodeEmptyPayloadFails(t *testing.T) {
	dec := hydrate.NewDecoder[cartDoc]()
	if _, err := dec.Decode(hydrate.Context{Key: "cart"}, nil); err == nil {
		t.Fatal("empty payload should fail")
	}
}

func TestPreHookRewritesRawObject(t *testing.T) {
	dec := hydrate.NewDecoder(
		hydrate.WithPreHook[cartDoc](func(_ hydrate.Context, object map[string]any) (map[string]any, error) {
			// Legacy documents stored the list under "entries".
			if legacy, ok := object["entries"]; ok {
				object["items"] = legacy
				delete(object, "entries")
			}
			return object, nil
		}),
	)

	doc, err := dec.Decode(hydrate.Context{Key: "cart"}, []byte(`{"entries":[{"id":3,"qty":1}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Items) != 1 || doc.Items[0].ID != 3 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestPostHookNormalizesResult(t *testing.T) {
	dec := hydrate.NewDecoder(
		hydrate.WithPostHook[cartDoc](func(_ hydrate.Context, doc *cartDoc) error {
			kept := doc.Items[:0]
			for _, it := range doc.Items {
				if it.Qty >= 1 {
					kept = append(kept, it)
				}
			}
			doc.Items = kept
			return nil
		}),
	)

	doc, err := dec.Decode(hydrate.Context{Key: "cart"}, []byte(`{"items":[{"id":1,"qty":0},{"id":2,"qty":5}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Items) != 1 || doc.Items[0].ID != 2 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestHookErrorsSurfaceWithKey(t *testing.T) {
	hookErr := errors.New("boom")
	dec := hydrate.NewDecoder(
		hydrate.WithPostHook[cartDoc](func(hydrate.Context, *cartDoc) error {
			return hookErr
		}),
	)

	_, err := dec.Decode(hydrate.Context{Key: "cart"}, []byte(`{"items":[]}`))
	if !errors.Is(err, hookErr) {
		t.Fatalf("err = %v, want wrapped hook error", err)
	}
}

func TestDecoderConfigApplies(t *testing.T) {
	dec := hydrate.NewDecoder(
		hydrate.WithDecoderConfig[cartDoc](func(d *json.Decoder) {
			d.DisallowUnknownFields()
		}),
	)
	if _, err := dec.Decode(hydrate.Context{Key: "cart"}, []byte(`{"items":[],"extra":1}`)); err == nil {
		t.Fatal("unknown field should fail under strict decoding")
	}
}
