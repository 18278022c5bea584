package domain

// DirectoryCategory groups directory entries into tabs.
type DirectoryCategory string

const (
	CategoryInstitutions  DirectoryCategory = "institutions"
	CategoryFaculties     DirectoryCategory = "facultes"
	CategoryProfessionals DirectoryCategory = "professionnels"
	CategoryOrganisations DirectoryCategory = "organismes"
)

// DirectoryCategories lists categories in tab order.
var DirectoryCategories = []DirectoryCategory{
	CategoryInstitutions, CategoryFaculties, CategoryProfessionals, CategoryOrganisations,
}

// Label returns the tab label.
func (c DirectoryCategory) Label() string {
	switch c {
	case CategoryInstitutions:
		return "Institutions"
	case CategoryFaculties:
		return "Facultés de droit"
	case CategoryProfessionals:
		return "Professionnels du droit"
	case CategoryOrganisations:
		return "Organismes juridiques"
	default:
		return string(c)
	}
}

// DirectoryEntry is read-only reference data about a legal institution.
type DirectoryEntry struct {
	ID          string            `yaml:"id"`
	Category    DirectoryCategory `yaml:"category"`
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Address     string            `yaml:"address"`
	Phone       string            `yaml:"phone"`
	Email       string            `yaml:"email"`
	Website     string            `yaml:"website"`
	Description string            `yaml:"description"`
}
