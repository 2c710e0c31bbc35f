package sorgu

import (
	"fmt"
	"strings"

	"adres-api/models"
)

// BuildAddress assembles a single-line address from the individual fields,
// skipping anything absent or empty:
//
//	{mahalle} Mah. {cadde} Cad. {sokak} Sok. No:{binaNo} D:{daireNo} {ilce}/{il}
func BuildAddress(alanlar map[string]any) string {
	var b strings.Builder
	ekle := func(alan, onek, sonek string) {
		v := alanlar[alan]
		if !models.Truthy(v) {
			return
		}
		b.WriteString(onek)
		b.WriteString(fmt.Sprint(v))
		b.WriteString(sonek)
	}

	ekle(models.AlanMahalle, "", " Mah. ")
	ekle(models.AlanCadde, "", " Cad. ")
	ekle(models.AlanSokak, "", " Sok. ")
	ekle(models.AlanBinaNo, "No:", " ")
	ekle(models.AlanDaireNo, "D:", " ")
	ekle(models.AlanIlce, "", "/")
	ekle(models.AlanIl, "", "")

	return strings.TrimSpace(b.String())
}
