package datetime

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		timeStr string
		want    string
		wantErr bool
	}{
		{
			name: "eski format tarih ve saat birleşir",
			date: "2024-05-01", timeStr: "19:00",
			want: "2024-05-01T19:00:00Z",
		},
		{
			name: "eski format saat yoksa gece yarısı",
			date: "2024-05-01", timeStr: "",
			want: "2024-05-01T00:00:00Z",
		},
		{
			name: "ISO zaman damgası olduğu gibi kabul edilir",
			date: "2024-05-01T19:00:00Z", timeStr: "",
			want: "2024-05-01T19:00:00Z",
		},
		{
			name: "saniyesiz ISO varyantı",
			date: "2024-05-01T19:00", timeStr: "",
			want: "2024-05-01T19:00:00Z",
		},
		{
			name: "dilimli ISO UTC'ye çevrilir",
			date: "2024-05-01T22:00:00+03:00", timeStr: "",
			want: "2024-05-01T19:00:00Z",
		},
		{
			name: "boş tarih hata döner",
			date: "", timeStr: "19:00",
			wantErr: true,
		},
		{
			name: "bozuk tarih hata döner",
			date: "mayıs-bir", timeStr: "19:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.date, tt.timeStr)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparsable) {
					t.Fatalf("ErrUnparsable bekleniyordu, gelen: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("beklenmeyen hata: %v", err)
			}
			want, _ := time.Parse(time.RFC3339, tt.want)
			if !got.Equal(want) {
				t.Errorf("Normalize() = %s, beklenen %s", got.Format(time.RFC3339), tt.want)
			}
		})
	}
}

// Eski format ile onun normalize edilmiş ISO hali aynı ana çözülmeli; ikinci
// Normalize çağrısı sonucu değiştirmemeli.
func TestNormalizeIdempotent(t *testing.T) {
	first, err := Normalize("2024-05-01", "19:00")
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	second, err := Normalize(first.Format(time.RFC3339), "")
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("idempotentlik bozuldu: %s != %s", first, second)
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if !IsUpcoming(now.Add(time.Minute), now) {
		t.Error("gelecekteki an upcoming olmalı")
	}
	if IsUpcoming(now.Add(-time.Minute), now) {
		t.Error("geçmişteki an upcoming olmamalı")
	}
	if IsUpcoming(now, now) {
		t.Error("tam şimdi upcoming sayılmamalı")
	}
}
