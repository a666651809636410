package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUSLookupResolvesTestNIPWithoutUpstream(t *testing.T) {
	service := NewGUSService("")

	company, err := service.LookupNIP(context.Background(), "8992689516")

	require.NoError(t, err)
	assert.Equal(t, "8992689516", company.NIP)
	assert.Equal(t, "Warszawa", company.City)
	assert.NotEmpty(t, company.Name)

	company, err = service.LookupNIP(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "WARSZTAT TESTOWY JAN KOWALSKI", company.Name)
}

func TestGUSLookupUnknownNIPWithoutUpstream(t *testing.T) {
	service := NewGUSService("")

	_, err := service.LookupNIP(context.Background(), "5260250995")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGUSLookupRejectsMalformedNIP(t *testing.T) {
	service := NewGUSService("")

	_, err := service.LookupNIP(context.Background(), "123-456-78-90")

	assert.ErrorIs(t, err, ErrValidation)
}
