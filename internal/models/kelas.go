package models

import (
	"database/sql"
	"sort"
	"time"
)

// Struktur is one node of the class-structure forest. ParentID is a nullable
// self reference; deleting a parent does not cascade to its children.
type Struktur struct {
	ID         int64          `json:"id" db:"id"`
	Nama       string         `json:"nama" db:"nama"`
	Role       string         `json:"role" db:"role"`
	ParentID   sql.NullInt64  `json:"parent_id" db:"parent_id"`
	Foto       sql.NullString `json:"foto" db:"foto"`
	ParentNama sql.NullString `json:"parent_nama" db:"parent_nama"`
}

type Jadwal struct {
	ID            int64  `json:"id" db:"id"`
	Hari          string `json:"hari" db:"hari"`
	JamMulai      string `json:"jam_mulai" db:"jam_mulai"`
	JamSelesai    string `json:"jam_selesai" db:"jam_selesai"`
	MataPelajaran string `json:"mata_pelajaran" db:"mata_pelajaran"`
	Guru          string `json:"guru" db:"guru"`
}

type Piket struct {
	ID        int64  `json:"id" db:"id"`
	Hari      string `json:"hari" db:"hari"`
	NamaSiswa string `json:"nama_siswa" db:"nama_siswa"`
	Tugas     string `json:"tugas" db:"tugas"`
}

// Siswa stores the attendance number as text; listings order it numerically.
type Siswa struct {
	ID        int64          `json:"id" db:"id"`
	Nama      string         `json:"nama" db:"nama"`
	Absen     string         `json:"absen" db:"absen"`
	Bio       string         `json:"bio" db:"bio"`
	Foto      sql.NullString `json:"foto" db:"foto"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

type Galeri struct {
	ID         int64     `json:"id" db:"id"`
	Filename   string    `json:"filename" db:"filename"`
	Caption    string    `json:"caption" db:"caption"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

var dayRank = map[string]int{
	"Senin":  1,
	"Selasa": 2,
	"Rabu":   3,
	"Kamis":  4,
	"Jumat":  5,
	"Sabtu":  6,
}

// DayRank orders Indonesian school days Senin..Sabtu; anything else sorts last.
func DayRank(hari string) int {
	if rank, ok := dayRank[hari]; ok {
		return rank
	}
	return 7
}

// SortJadwal orders schedule entries by day rank, then by start time.
func SortJadwal(entries []Jadwal) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := DayRank(entries[i].Hari), DayRank(entries[j].Hari)
		if ri != rj {
			return ri < rj
		}
		return entries[i].JamMulai < entries[j].JamMulai
	})
}

// SortPiket orders duty entries by day rank.
func SortPiket(entries []Piket) {
	sort.SliceStable(entries, func(i, j int) bool {
		return DayRank(entries[i].Hari) < DayRank(entries[j].Hari)
	})
}
