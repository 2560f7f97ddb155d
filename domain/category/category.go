package category

// Category represents the business-model classification that drives which
// weight and gate policy applies to an evaluation.
type Category string

const (
	SaaSB2B              Category = "saas-b2b"
	SaaSB2C              Category = "saas-b2c"
	PhysicalSubscription Category = "physical-subscription"
	DTCEcom              Category = "dtc-ecom"
	ServicesMarketplace  Category = "services-marketplace"
	FreelanceMarketplace Category = "freelance-marketplace"
	LearningMarketplace  Category = "learning-marketplace"
	RegulatedServices    Category = "regulated-services"
	VerticalComms        Category = "vertical-comms"
	PMSoftware           Category = "pm-software"
	General              Category = "general"
)

// All returns every known category in declaration order.
func All() []Category {
	return []Category{
		SaaSB2B,
		SaaSB2C,
		PhysicalSubscription,
		DTCEcom,
		ServicesMarketplace,
		FreelanceMarketplace,
		LearningMarketplace,
		RegulatedServices,
		VerticalComms,
		PMSoftware,
		General,
	}
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// IsKnown reports whether c is one of the enumerated categories.
func (c Category) IsKnown() bool {
	for _, known := range All() {
		if c == known {
			return true
		}
	}
	return false
}

// Parse maps a raw string to a Category. Unrecognized values resolve to
// General; the second return reports whether the input was a known category.
func Parse(s string) (Category, bool) {
	c := Category(s)
	if c.IsKnown() {
		return c, true
	}
	return General, false
}
