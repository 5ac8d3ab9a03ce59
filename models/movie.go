package models

// Movie is a read-only catalog entry.
type Movie struct {
	// MovieID is the opaque catalog identifier referenced by favorites.
	MovieID     string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
	ImagePath   string   `json:"image_path,omitempty"`
	Featured    bool     `json:"featured"`
}

// Genre is embedded into every movie.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Director is embedded into every movie.
// DeathYear is nil while the director is alive.
type Director struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
}
