package service

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
)

type contextKey string

const (
	MaxTitleLength                  = 200
	MaxCategoryLength               = 50
	KeyJWTSecret                    = "JWT_SECRET"
	KeyUserName                     = "user_name"
	KeyCtxUserCredClaims contextKey = "UserCredClaims"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// lowercase words separated by single hyphens, e.g. two-sum
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

func InitializeServices() {
	validateOnce.Do(func() {
		validate = initValidator() // used for validating struct fields
	})
}

func initValidator() *validator.Validate {
	log.Info("initializing validator")
	validate := validator.New(validator.WithRequiredStructEnabled())

	// This makes error.Field() return "slug_id" instead of "SlugID"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return validate
}

// IsSlug reports whether s is a lowercase hyphenated problem id.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func GetClaimsFromContext(
	ctx context.Context,
) (claims UserCredentialClaims, err error) {
	claimsValue := ctx.Value(KeyCtxUserCredClaims)
	claims, ok := claimsValue.(UserCredentialClaims)
	if !ok {
		err = fmt.Errorf(
			"%w, unable to parse claims to service.UserCredentialClaims, type of claims found is %T",
			algo_errors.ErrUnAuthorized,
			claimsValue,
		)
		log.Error(err)
	}
	return
}

// WithClaims stores verified claims on the request context.
func WithClaims(ctx context.Context, claims UserCredentialClaims) context.Context {
	return context.WithValue(ctx, KeyCtxUserCredClaims, claims)
}

// ActorFromContext names the caller for audit logs.
func ActorFromContext(ctx context.Context) string {
	claims, ok := ctx.Value(KeyCtxUserCredClaims).(UserCredentialClaims)
	if !ok || claims.UserName == "" {
		return "anonymous"
	}
	return claims.UserName
}
