package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "boss not found",
			expected: "NOT_FOUND: boss not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load inventory")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load inventory", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.InsufficientResources("need %d green orbs", 3)
	wrapped := errors.Wrap(baseErr, "forge rejected")

	s.Equal(errors.CodeResourceExhausted, wrapped.Code)
	s.True(errors.IsInsufficientResources(wrapped))
	s.Equal(errors.ReasonInsufficientResources, errors.GetMeta(wrapped)[errors.MetaReason])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeAborted, errors.GetCode(errors.Terminal("battle is over")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Equal("", errors.GetMessage(nil))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Equal("wrapped message", errors.GetMessage(errors.Wrap(errors.NotFound("x"), "wrapped message")))
}

func (s *ErrorsTestSuite) TestGRPCRoundTripKeepsMeta() {
	err := errors.AlreadyActive("elixir %s already active", "star-clarity").
		WithMeta("elixir_id", "star-clarity")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.AlreadyExists, st.Code())
	s.Equal("elixir star-clarity already active", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsAlreadyActive(back))
	s.Equal("star-clarity", errors.GetMeta(back)["elixir_id"])
}

func (s *ErrorsTestSuite) TestGRPCUnsupportedMetaIsStringified() {
	err := errors.NewValidationBuilder().RequiredField("Roller").Build()

	st, ok := status.FromError(errors.ToGRPCError(err))
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Len(st.Details(), 1)
}

func (s *ErrorsTestSuite) TestGRPCPlainError() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
	s.Nil(errors.ToGRPCError(nil))
}
