package dataset

import "github.com/shelfsort/bookident/internal/models"

// GroundTruthRecord is one row of an identification evaluation dataset:
// a cover image path plus the catalog record it should resolve to
type GroundTruthRecord struct {
	ImagePath string `json:"image_path" parquet:"image_path"`
	ISBN      string `json:"isbn" parquet:"isbn"`
	Title     string `json:"title" parquet:"title"`
	Author    string `json:"author" parquet:"author"`
	Year      int    `json:"year" parquet:"year"`
	Publisher string `json:"publisher" parquet:"publisher"`
}

// Expected returns the ground truth as a Book record
func (r *GroundTruthRecord) Expected() models.Book {
	return models.Book{
		ISBN:      r.ISBN,
		Title:     r.Title,
		Author:    r.Author,
		Year:      r.Year,
		Publisher: r.Publisher,
	}
}
