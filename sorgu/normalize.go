package sorgu

import "adres-api/models"

// Normalize turns a successful upstream object into the cleaned response.
// Only the known address fields survive; each is sanitized. When no usable
// "adres" is left but "il" is, the address line is assembled from the
// already-cleaned fields.
func Normalize(raw models.UpstreamResponse) models.Response {
	out := models.Response{models.KeyStatus: models.StatusSuccess}

	for _, alan := range models.AdresAlanlari {
		if v := raw[alan]; models.Truthy(v) {
			out[alan] = Sanitize(v)
		}
	}

	if !models.Truthy(out[models.AlanAdres]) && models.Truthy(out[models.AlanIl]) {
		out[models.AlanAdres] = BuildAddress(out)
	}
	return out
}
