package domain

import "fmt"

// Dataset identifies one scraped catalog dataset.
type Dataset string

const (
	// DatasetDisciplines is the catalog of subjects.
	DatasetDisciplines Dataset = "disciplines"

	// DatasetCourses is the catalog of degree programs.
	DatasetCourses Dataset = "courses"
)

// Datasets lists every known dataset.
func Datasets() []Dataset {
	return []Dataset{DatasetDisciplines, DatasetCourses}
}

// ParseDataset validates a dataset name from an external caller.
func ParseDataset(name string) (Dataset, error) {
	switch Dataset(name) {
	case DatasetDisciplines:
		return DatasetDisciplines, nil
	case DatasetCourses:
		return DatasetCourses, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
}

// String returns the dataset name.
func (d Dataset) String() string {
	return string(d)
}
