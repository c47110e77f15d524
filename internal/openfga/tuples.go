// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	fga "github.com/openfga/go-sdk"
)

type Tuple struct {
	User     string
	Relation string
	Object   string
}

func (t *Tuple) tupleKey() fga.TupleKey {
	return fga.TupleKey{
		User:     t.User,
		Relation: t.Relation,
		Object:   t.Object,
	}
}

func (t *Tuple) tupleKeyWithoutCondition() fga.TupleKeyWithoutCondition {
	return fga.TupleKeyWithoutCondition{
		User:     t.User,
		Relation: t.Relation,
		Object:   t.Object,
	}
}

func NewTuple(user, relation, object string) *Tuple {
	t := new(Tuple)

	t.User = user
	t.Relation = relation
	t.Object = object

	return t
}

// TupleWithContext carries contextual tuples alongside the tuple to check,
// used for batched checks.
type TupleWithContext struct {
	Tuple

	ContextualTuples []Tuple
}

func NewTupleWithContext(user, relation, object string, contextualTuples ...Tuple) *TupleWithContext {
	t := new(TupleWithContext)

	t.User = user
	t.Relation = relation
	t.Object = object
	t.ContextualTuples = contextualTuples

	return t
}
