// Package domain models ARSO (Slovenian Environment Agency) air-quality
// measurement exports and the consolidated PM10 table built from them.
//
// # Data Source
//
// Raw measurements come as one CSV file per station and year, downloaded from
// the ARSO air-quality archive into a single directory. The station and the
// measured pollutant are not part of the file content; they are encoded in
// the file name.
//
// # Naming Convention
//
// File names follow:
//
//	"<prefix>_<year>_<station...>_<code>.csv"  →  e.g. "tabela_2022_CE bolnica_18247.csv"
//
// The station label is everything between the year and the trailing
// pollutant code and may itself contain underscores or spaces
// ("LJ Bezigrad", "MB_Titova"). PM10 is pollutant code 18247. Parsed by
// [ParseSourceName]; [StationFromName] is the permissive variant that never
// fails.
//
// # Row Format
//
// The first line of every export is a garbled header ("d,a,t,u,m,...") and is
// discarded without inspection. Data rows are positional:
//
//	date, value, validity_flag, corrected_flag, ...
//
// Only the first three fields are consulted. Date and value are carried
// through as opaque text. The validity flag is "1" for measurements that
// passed quality control; every other value marks the row invalid.
//
// # Row Outcomes
//
// Each data row ends in exactly one [RowOutcome]:
//
//	RowKept       validity flag equals the sentinel, turned into a Record
//	RowFiltered   validity flag differs from the sentinel (intended filter)
//	RowMalformed  fewer than four fields
package domain
