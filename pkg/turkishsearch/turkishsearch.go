// Package turkishsearch Türkçe karakterlere duyarsız metin araması için
// ILIKE tabanlı SQL parçası üretir. PostgreSQL'in ILIKE'ı İ/ı dönüşümünü
// doğru yapmadığından her iki büyük/küçük varyant da aranır.
package turkishsearch

import "strings"

// foldTurkish aramada eşdeğer sayılacak karakterleri sadeleştirir.
var foldTurkish = strings.NewReplacer(
	"İ", "i", "I", "ı",
	"Ğ", "ğ", "Ü", "ü", "Ş", "ş", "Ö", "ö", "Ç", "ç",
)

// Fold terimi Türkçe kurallarına göre küçük harfe indirir.
func Fold(term string) string {
	return strings.ToLower(foldTurkish.Replace(term))
}

// SQLFilter verilen sütun için ILIKE koşulu ve argümanlarını döndürür.
// Terim hem olduğu gibi hem Türkçe küçük harfe indirilmiş haliyle aranır.
func SQLFilter(column, term string) (string, []interface{}) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "1=1", nil
	}
	pattern := "%" + term + "%"
	folded := "%" + Fold(term) + "%"
	if folded == pattern {
		return column + " ILIKE ?", []interface{}{pattern}
	}
	return "(" + column + " ILIKE ? OR " + column + " ILIKE ?)", []interface{}{pattern, folded}
}
