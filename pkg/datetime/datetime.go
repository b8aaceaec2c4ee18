// Package datetime eski istemciden kalan ayrık tarih+saat alanları ile yeni
// ISO zaman damgası alanlarını tek bir ISO-8601 ana biçiminde birleştirir.
package datetime

import (
	"errors"
	"strings"
	"time"
)

var ErrUnparsable = errors.New("tarih/saat değeri çözümlenemedi")

// isoLayouts yeni format alanlarında karşılaşılan varyantlar.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalize bir etkinliğin tarih alanını ISO-8601 anına çevirir.
//   - date "T" içeriyorsa tam zaman damgası kabul edilir,
//   - değilse eski format: date takvim günü, timeStr yerel saat ("19:00").
//
// Saat dilimi belirtilmeyen değerler UTC kabul edilir. Fonksiyon idempotenttir:
// Normalize çıktısı tekrar Normalize edilirse aynı an döner.
func Normalize(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, ErrUnparsable
	}

	if strings.Contains(date, "T") {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, date); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, ErrUnparsable
	}

	// Eski format: "2006-01-02" + "15:04" (saat yoksa gece yarısı).
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		timeStr = "00:00"
	}
	combined := date + "T" + timeStr
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, combined); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrUnparsable
}

// NormalizeString Normalize'ın RFC3339 string döndüren hali; zaten ISO olan
// girdiyi değiştirmeden aynı ana sabitler.
func NormalizeString(date, timeStr string) (string, error) {
	t, err := Normalize(date, timeStr)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

// IsUpcoming normalize edilmiş anın verilen "şimdi"den sonra olup olmadığını
// söyler. Sınıflandırma çağrı anında yeniden hesaplanır, önbelleklenmez.
func IsUpcoming(instant time.Time, now time.Time) bool {
	return instant.After(now)
}
