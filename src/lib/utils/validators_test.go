package utils_test

import (
	"testing"

	"github.com/stormkit-io/fnmanagement/src/lib/utils"
	"github.com/stretchr/testify/suite"
)

type ValidatorsSuite struct {
	suite.Suite
}

type caller struct {
	Email string `validate:"required,notblank"`
}

func (s *ValidatorsSuite) Test_NotBlank() {
	s.NoError(utils.Validator().Struct(caller{Email: "u1"}))
	s.Error(utils.Validator().Struct(caller{Email: "   "}))
	s.Error(utils.Validator().Struct(caller{}))
}

func (s *ValidatorsSuite) Test_Singleton() {
	s.Same(utils.Validator(), utils.Validator())
}

func TestValidatorsSuite(t *testing.T) {
	suite.Run(t, &ValidatorsSuite{})
}
