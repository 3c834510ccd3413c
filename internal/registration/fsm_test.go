package registration

import (
	"testing"
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceHappyPath(t *testing.T) {
	l := validation.DefaultLimits()
	s := NewSession(7, time.Now())

	steps := []struct {
		in   Input
		want Step
	}{
		{Input{Text: " Alice "}, AwaitingAge},
		{Input{Text: "21"}, AwaitingDepartment},
		{Input{Text: "Computer Science"}, AwaitingBio},
		{Input{Text: "I like compilers and tea."}, AwaitingPhoto},
		{Input{PhotoRef: "file-1"}, Complete},
	}
	var err error
	for _, st := range steps {
		s, err = Advance(s, st.in, l)
		require.NoError(t, err)
		assert.Equal(t, st.want, s.Step)
	}

	in := s.ProfileInput()
	assert.Equal(t, int64(7), in.ID)
	assert.Equal(t, "Alice", in.Name)
	assert.Equal(t, 21, in.Age)
	assert.Equal(t, "file-1", in.PhotoRef)
}

func TestAdvanceRejectsBadInput(t *testing.T) {
	l := validation.DefaultLimits()

	tests := []struct {
		name  string
		step  Step
		in    Input
		field string
	}{
		{"short name", AwaitingName, Input{Text: "A"}, "name"},
		{"age not a number", AwaitingAge, Input{Text: "twenty"}, "age"},
		{"too young", AwaitingAge, Input{Text: "15"}, "age"},
		{"short department", AwaitingDepartment, Input{Text: "X"}, "department"},
		{"short bio", AwaitingBio, Input{Text: "123456789"}, "bio"},
		{"text instead of photo", AwaitingPhoto, Input{Text: "here you go"}, "photo_ref"},
		{"already complete", Complete, Input{Text: "hi"}, "step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{UserID: 1, Step: tt.step}
			got, err := Advance(s, tt.in, l)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, s, got, "session unchanged")
		})
	}
}

func TestAdvanceAgeBoundary(t *testing.T) {
	s := Session{UserID: 1, Step: AwaitingAge}
	next, err := Advance(s, Input{Text: "16"}, validation.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, 16, next.Age)
}

func TestStepField(t *testing.T) {
	assert.Equal(t, "name", AwaitingName.Field())
	assert.Equal(t, "photo_ref", AwaitingPhoto.Field())
	assert.Empty(t, Complete.Field())
}
