package knowledge

import (
	"errors"
	"testing"
)

func TestDocumentRender(t *testing.T) {
	doc := Document{Records: []Record{
		{
			ID: EntityID{Token: "the_kitchen", Kind: "room"},
			Attributes: []Attribute{
				{Name: "room_has", Value: EntityID{Token: "the_kitchen_fridge", Kind: "fridge"}},
			},
		},
		{
			ID: EntityID{Token: "the_kitchen_sink", Kind: "kitchen_sink"},
			Attributes: []Attribute{
				{Name: "faucet_on", Value: true},
			},
		},
		{
			ID: EntityID{Token: "the_kitchen_shelf", Kind: "shelf"},
			Attributes: []Attribute{
				{Name: "levels", Value: 4},
				{Name: "label", Value: "spice rack"},
			},
		},
		{ID: EntityID{Token: "me", Kind: "person"}},
	}}

	want := "version: 1\n" +
		"entities:\n" +
		"  - instance: [\"the_kitchen\", \"room\"]\n" +
		"    attributes:\n" +
		"    - name: room_has\n" +
		"      value:\n" +
		"        instance: [\"the_kitchen_fridge\", \"fridge\"]\n" +
		"  - instance: [\"the_kitchen_sink\", \"kitchen_sink\"]\n" +
		"    attributes:\n" +
		"    - name: faucet_on\n" +
		"      value: true\n" +
		"  - instance: [\"the_kitchen_shelf\", \"shelf\"]\n" +
		"    attributes:\n" +
		"    - name: levels\n" +
		"      value: 4\n" +
		"    - name: label\n" +
		"      value: \"spice rack\"\n" +
		"  - instance: [\"me\", \"person\"]\n"
	if got := doc.Render(); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderRejectsUnsupportedValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	doc := Document{Records: []Record{{
		ID:         EntityID{Token: "x", Kind: "y"},
		Attributes: []Attribute{{Name: "bad", Value: 1.5}},
	}}}
	doc.Render()
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		doc := Document{Records: []Record{
			{
				ID: EntityID{Token: "alice_phone", Kind: "phone"},
				Attributes: []Attribute{
					{Name: "in_hand", Value: EntityID{Token: "me", Kind: "person"}},
					{Name: "phone_ringing", Value: false},
				},
			},
			{ID: EntityID{Token: "water", Kind: "liquid"}},
		}}

		parsed, err := Parse([]byte(doc.Render()))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if parsed.Version != Version {
			t.Fatalf("expected version %d, got %d", Version, parsed.Version)
		}
		if len(parsed.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(parsed.Records))
		}

		phone, ok := parsed.Record("alice_phone")
		if !ok {
			t.Fatalf("phone record missing")
		}
		if phone.ID.Kind != "phone" {
			t.Fatalf("unexpected kind %q", phone.ID.Kind)
		}

		holder, ok := phone.Attribute("in_hand")
		if !ok {
			t.Fatalf("in_hand attribute missing")
		}
		ref, ok := holder.Ref()
		if !ok {
			t.Fatalf("in_hand is not a reference")
		}
		if ref != (EntityID{Token: "me", Kind: "person"}) {
			t.Fatalf("unexpected reference: %+v", ref)
		}

		ringing, ok := phone.Attribute("phone_ringing")
		if !ok {
			t.Fatalf("phone_ringing attribute missing")
		}
		if flag, isBool := ringing.Value.(bool); !isBool || flag {
			t.Fatalf("unexpected ringing value: %v", ringing.Value)
		}
		if _, isRef := ringing.Ref(); isRef {
			t.Fatalf("bool attribute must not parse as reference")
		}

		static, ok := parsed.Record("water")
		if !ok {
			t.Fatalf("static record missing")
		}
		if len(static.Attributes) != 0 {
			t.Fatalf("expected bare record, got %+v", static.Attributes)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		data := "version: 2\nentities:\n  - instance: [\"a\", \"b\"]\n"
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrBadVersion) {
			t.Fatalf("expected ErrBadVersion, got %v", err)
		}
	})

	t.Run("malformed identity", func(t *testing.T) {
		data := "version: 1\nentities:\n  - instance: [\"only_token\"]\n"
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrBadIdentity) {
			t.Fatalf("expected ErrBadIdentity, got %v", err)
		}
	})

	t.Run("not yaml", func(t *testing.T) {
		if _, err := Parse([]byte("entities: [\n")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing record", func(t *testing.T) {
		parsed, err := Parse([]byte("version: 1\nentities:\n  - instance: [\"a\", \"b\"]\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := parsed.Record("zzz"); ok {
			t.Fatalf("expected missing record")
		}
	})
}
