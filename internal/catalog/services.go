package catalog

// Service is a bookable makeup service. The list is static and lives in
// code; bookings snapshot the name and price at creation time.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
}

var services = []Service{
	{ID: 1, Name: "Bridal Makeup", Slug: "bridal-makeup", Price: 15000.0, Description: "Perfect for your special day", Duration: "3-4 hours"},
	{ID: 2, Name: "Soft Glam Makeup", Slug: "soft-glam", Price: 8000.0, Description: "Natural and elegant look", Duration: "2-3 hours"},
	{ID: 3, Name: "Creative Makeup", Slug: "creative-makeup", Price: 12000.0, Description: "Artistic and unique designs", Duration: "2-3 hours"},
	{ID: 4, Name: "SFX Makeup", Slug: "sfx-makeup", Price: 20000.0, Description: "Special effects and transformations", Duration: "4-5 hours"},
}

// Services returns the full bookable service list.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ServiceByID returns the service with the given ID, or nil.
func ServiceByID(id int64) *Service {
	for i := range services {
		if services[i].ID == id {
			s := services[i]
			return &s
		}
	}
	return nil
}

// ServiceBySlug returns the service with the given URL slug, or nil.
func ServiceBySlug(slug string) *Service {
	for i := range services {
		if services[i].Slug == slug {
			s := services[i]
			return &s
		}
	}
	return nil
}
