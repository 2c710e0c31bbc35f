package sorgu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"adres-api/models"
)

func TestNormalize_SynthesizesAddress(t *testing.T) {
	got := Normalize(models.UpstreamResponse{"il": "İstanbul", "ilce": "Kadıköy", "mahalle": "Merkez"})

	assert.Equal(t, models.Response{
		"status":  "success",
		"il":      "İstanbul",
		"ilce":    "Kadıköy",
		"mahalle": "Merkez",
		"adres":   "Merkez Mah. Kadıköy/İstanbul",
	}, got)
}

func TestNormalize_KeepsSanitizedAddress(t *testing.T) {
	got := Normalize(models.UpstreamResponse{
		"adres": "Moda Cad. No:1 kahin.org",
		"il":    "İstanbul",
	})

	assert.Equal(t, "Moda Cad. No:1 .org", got["adres"])
	assert.Equal(t, "İstanbul", got["il"])
}

func TestNormalize_DropsUnknownAndEmptyFields(t *testing.T) {
	got := Normalize(models.UpstreamResponse{
		"tc":        "10000000146",
		"adSoyad":   "Ali Veli",
		"il":        "",
		"ilce":      nil,
		"postaKodu": json.Number("34710"),
		"binaNo":    json.Number("0"),
	})

	assert.Equal(t, models.Response{"status": "success", "postaKodu": json.Number("34710")}, got)
}

func TestNormalize_AssemblesFromCleanedFields(t *testing.T) {
	got := Normalize(models.UpstreamResponse{
		"il":      "Ankara",
		"mahalle": "sahibinden",
		"sokak":   "Gül @ilan",
		"binaNo":  json.Number("5"),
	})

	// mahalle was cleaned to "", so it is kept but skipped by the assembler
	assert.Equal(t, "", got["mahalle"])
	assert.Equal(t, "Gül Sok. No:5 Ankara", got["adres"])
}

func TestNormalize_AdresCleanedToEmptyIsRebuilt(t *testing.T) {
	got := Normalize(models.UpstreamResponse{"adres": "telegram", "il": "Bursa", "ilce": "Nilüfer"})
	assert.Equal(t, "Nilüfer/Bursa", got["adres"])
}

func TestNormalize_NoIlNoAddress(t *testing.T) {
	got := Normalize(models.UpstreamResponse{"ilce": "Nilüfer"})
	_, ok := got["adres"]
	assert.False(t, ok)
}
