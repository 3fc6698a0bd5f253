package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/algodex/internal/algo_errors"
)

type sample struct {
	Slug  string   `json:"slug_id" validate:"required,slug"`
	Name  string   `json:"name" validate:"notblank,max=5"`
	Tags  []string `json:"tags" validate:"required,min=1,unique"`
	Level string   `json:"level" validate:"oneof=low high"`
}

func validSample() sample {
	return sample{Slug: "two-sum", Name: "ok", Tags: []string{"a"}, Level: "low"}
}

func TestIsSlug(t *testing.T) {
	for _, s := range []string{"two-sum", "3sum", "a", "lru-cache-2"} {
		assert.True(t, IsSlug(s), s)
	}
	for _, s := range []string{"", "Two-Sum", "two--sum", "-two", "two-", "two sum", "two_sum"} {
		assert.False(t, IsSlug(s), s)
	}
}

func TestValidateInputMessages(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*sample)
		msg    string
	}{
		{"slug", func(s *sample) { s.Slug = "Two Sum" }, "slug_id must be lowercase words separated by hyphens"},
		{"blank", func(s *sample) { s.Name = "  " }, "name is required"},
		{"max", func(s *sample) { s.Name = "toolong" }, "name must be at most 5 characters long"},
		{"empty slice", func(s *sample) { s.Tags = nil }, "at least one tags is required"},
		{"duplicates", func(s *sample) { s.Tags = []string{"a", "a"} }, "tags must not contain duplicates"},
		{"oneof", func(s *sample) { s.Level = "mid" }, "level must be one of [low high]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := validSample()
			c.mutate(&s)
			err := ValidateInput(s)
			require.ErrorIs(t, err, algo_errors.ErrInvalidInput)
			assert.Contains(t, err.Error(), c.msg)
		})
	}

	assert.NoError(t, ValidateInput(validSample()))
}

func TestValidateVar(t *testing.T) {
	err := ValidateVar("name", "  ", "notblank")
	require.ErrorIs(t, err, algo_errors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")

	assert.NoError(t, ValidateVar("name", "Array", "notblank,max=50"))
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, "anonymous", ActorFromContext(context.Background()))

	ctx := WithClaims(context.Background(), UserCredentialClaims{UserName: "ada"})
	assert.Equal(t, "ada", ActorFromContext(ctx))

	claims, err := GetClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.UserName)

	_, err = GetClaimsFromContext(context.Background())
	assert.ErrorIs(t, err, algo_errors.ErrUnAuthorized)
}
