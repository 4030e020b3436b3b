package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// EvaluationEvent records one checked answer.
type EvaluationEvent struct {
	ent.Schema
}

func (EvaluationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (EvaluationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty().
			Immutable().
			Comment("UUID of this attempt"),
		field.String("trace_id").
			Default("").
			Comment("Question set: a trace ID or trace:stepN"),
		field.String("question_id").
			Default(""),
		field.String("kind").
			Default("").
			Comment("choice, open or coding"),
		field.String("verdict").
			Comment("correct, partial or wrong"),
		field.Float("score"),
		field.Int("matched_keywords").
			Default(0),
		field.Int("total_keywords").
			Default(0),
		field.Text("answer").
			Default(""),
	}
}

func (EvaluationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("trace_id"),
	}
}
