package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KV holds small keyed documents such as quiz progress and the session flag.
type KV struct {
	ent.Schema
}

func (KV) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Comment("Primary key, e.g. quiz:<set>:<hash> or auth:session"),
		field.Bytes("value"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
