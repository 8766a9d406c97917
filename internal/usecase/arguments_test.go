package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goodfoods/goodfoods/internal/usecase"
)

func TestArgumentsOptionalString(t *testing.T) {
	args := usecase.Arguments{"cuisine": "  Italian ", "empty": "", "blank": "   ", "number": 3.0}

	assert.Equal(t, "Italian", args.OptionalString("cuisine"))
	assert.Equal(t, "", args.OptionalString("empty"))
	assert.Equal(t, "", args.OptionalString("blank"))
	assert.Equal(t, "", args.OptionalString("number"))
	assert.Equal(t, "", args.OptionalString("absent"))
}

func TestArgumentsRequiredString(t *testing.T) {
	tests := []struct {
		name    string
		args    usecase.Arguments
		key     string
		want    string
		wantErr bool
	}{
		{name: "present", args: usecase.Arguments{"venue_id": "ven_001"}, key: "venue_id", want: "ven_001"},
		{name: "trimmed", args: usecase.Arguments{"venue_id": " ven_001 "}, key: "venue_id", want: "ven_001"},
		{name: "missing", args: usecase.Arguments{}, key: "venue_id", wantErr: true},
		{name: "blank", args: usecase.Arguments{"venue_id": "  "}, key: "venue_id", wantErr: true},
		{name: "wrong type", args: usecase.Arguments{"venue_id": 12}, key: "venue_id", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.args.RequiredString(tt.key)
			if tt.wantErr {
				var argErr *usecase.ArgumentError
				assert.ErrorAs(t, err, &argErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgumentsRequiredInt(t *testing.T) {
	tests := []struct {
		name    string
		args    usecase.Arguments
		key     string
		want    int
		wantErr bool
	}{
		{name: "json float", args: usecase.Arguments{"party_size": 4.0}, key: "party_size", want: 4},
		{name: "go int", args: usecase.Arguments{"party_size": 4}, key: "party_size", want: 4},
		{name: "numeric string", args: usecase.Arguments{"party_size": "4"}, key: "party_size", want: 4},
		{name: "fractional", args: usecase.Arguments{"party_size": 4.5}, key: "party_size", wantErr: true},
		{name: "missing", args: usecase.Arguments{}, key: "party_size", wantErr: true},
		{name: "garbage string", args: usecase.Arguments{"party_size": "four"}, key: "party_size", wantErr: true},
		{name: "wrong type", args: usecase.Arguments{"party_size": true}, key: "party_size", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.args.RequiredInt(tt.key)
			if tt.wantErr {
				var argErr *usecase.ArgumentError
				assert.ErrorAs(t, err, &argErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
