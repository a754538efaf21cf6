package models

import "testing"

func TestDayRank(t *testing.T) {
	tests := []struct {
		hari string
		want int
	}{
		{"Senin", 1},
		{"Selasa", 2},
		{"Rabu", 3},
		{"Kamis", 4},
		{"Jumat", 5},
		{"Sabtu", 6},
		{"Minggu", 7},
		{"", 7},
		{"senin", 7}, // case sensitive, matches stored values
	}

	for _, tt := range tests {
		if got := DayRank(tt.hari); got != tt.want {
			t.Errorf("DayRank(%q) = %d, want %d", tt.hari, got, tt.want)
		}
	}
}

func TestSortJadwal(t *testing.T) {
	entries := []Jadwal{
		{Hari: "Rabu", JamMulai: "07:00"},
		{Hari: "Senin", JamMulai: "10:00"},
		{Hari: "Senin", JamMulai: "07:00"},
		{Hari: "TidakValid", JamMulai: "07:00"},
	}

	SortJadwal(entries)

	want := []struct {
		hari     string
		jamMulai string
	}{
		{"Senin", "07:00"},
		{"Senin", "10:00"},
		{"Rabu", "07:00"},
		{"TidakValid", "07:00"},
	}

	for i, w := range want {
		if entries[i].Hari != w.hari || entries[i].JamMulai != w.jamMulai {
			t.Errorf("entry %d = %s %s, want %s %s", i, entries[i].Hari, entries[i].JamMulai, w.hari, w.jamMulai)
		}
	}
}

func TestSortPiketStable(t *testing.T) {
	entries := []Piket{
		{Hari: "Selasa", NamaSiswa: "B"},
		{Hari: "Senin", NamaSiswa: "A"},
		{Hari: "Senin", NamaSiswa: "C"},
	}

	SortPiket(entries)

	if entries[0].NamaSiswa != "A" || entries[1].NamaSiswa != "C" || entries[2].NamaSiswa != "B" {
		t.Errorf("unexpected order: %+v", entries)
	}
}
