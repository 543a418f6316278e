package models

import "fmt"

// Hadith is a single hadith record
type Hadith struct {
	ID          int    `json:"id"`
	Arabic      string `json:"arabic"`
	Translation string `json:"translation"`
	Narrator    string `json:"narrator"`
	Source      string `json:"source"`
}

// Verse is a single Quran verse record
type Verse struct {
	Surah       int    `json:"surah"`
	SurahName   string `json:"surah_name"`
	Ayah        int    `json:"ayah"`
	Arabic      string `json:"arabic"`
	Translation string `json:"translation"`
}

// Reference returns the "Surah:Ayah" reference of the verse.
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.SurahName, v.Surah, v.Ayah)
}

// Dhikr is a short remembrance phrase
type Dhikr struct {
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
}
