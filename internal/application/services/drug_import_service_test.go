package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

const importPayload = `[
  {
    "nazwa_produktu_leczniczego": "Apap",
    "nazwa_powszechnie_stosowana": "Paracetamolum",
    "droga_podania_gatunek_tkanka_okres_karencji": "podanie doustne",
    "moc": "500 mg",
    "substancja_czynna": "Paracetamolum",
    "numer_pozwolenia": "R/1234",
    "podmiot_odpowiedzialny": "US Pharmacia",
    "nazwa_wytw_rcy": "US Pharmacia Sp. z o.o.",
    "cena": 12.99,
    "ilość": 50
  },
  {
    "nazwa_produktu_leczniczego": "",
    "substancja_czynna": "Ibuprofenum"
  },
  {
    "nazwa_produktu_leczniczego": "Ibuprom",
    "substancja_czynna": "Ibuprofenum"
  }
]`

func TestImportFromJSON(t *testing.T) {
	repo := newFakeDrugRepo()
	service := NewDrugImportService(NewDrugUpserter(repo))

	summary, err := service.ImportFromJSON(context.Background(), strings.NewReader(importPayload))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.SkippedRows)
	assert.Empty(t, summary.Errors)

	stored, err := repo.GetByProductAndSubstance(context.Background(), "Apap", "Paracetamolum")
	require.NoError(t, err)
	assert.Equal(t, "500 mg", stored.Strength)
	assert.Equal(t, "Paracetamolum", stored.CommonName)
	assert.Equal(t, "R/1234", stored.AuthorizationNumber)
	assert.Equal(t, "US Pharmacia Sp. z o.o.", stored.Manufacturer)
	require.NotNil(t, stored.Price)
	assert.InDelta(t, 12.99, *stored.Price, 0.001)
	require.NotNil(t, stored.Quantity)
	assert.Equal(t, 50, *stored.Quantity)
}

func TestImportFromJSONIsIdempotent(t *testing.T) {
	repo := newFakeDrugRepo()
	service := NewDrugImportService(NewDrugUpserter(repo))

	_, err := service.ImportFromJSON(context.Background(), strings.NewReader(importPayload))
	require.NoError(t, err)

	second, err := service.ImportFromJSON(context.Background(), strings.NewReader(importPayload))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)
}

func TestImportFromJSONInvalidPayload(t *testing.T) {
	service := NewDrugImportService(NewDrugUpserter(newFakeDrugRepo()))

	_, err := service.ImportFromJSON(context.Background(), strings.NewReader("{not json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
