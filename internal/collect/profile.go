package collect

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Profile holds the name pools the sample collectors draw from. Pools can
// be overridden from a YAML file so a deployment can localize areas and
// company names without a rebuild.
type Profile struct {
	RealEstate struct {
		Areas    []string `yaml:"areas"`
		Agencies []string `yaml:"agencies"`
	} `yaml:"real_estate"`
	ServiceProviders struct {
		Services []string `yaml:"services"`
		Areas    []string `yaml:"areas"`
	} `yaml:"service_providers"`
	Tutors struct {
		Subjects []string `yaml:"subjects"`
		Areas    []string `yaml:"areas"`
	} `yaml:"tutors"`
}

// DefaultProfile returns the built-in name pools.
func DefaultProfile() Profile {
	var p Profile
	p.RealEstate.Areas = []string{"Sandton", "Cape Town City Bowl", "Umhlanga", "Pretoria East", "Durban North"}
	p.RealEstate.Agencies = []string{"Pam Golding", "Re/Max", "Seeff", "Rawson", "Chas Everitt"}
	p.ServiceProviders.Services = []string{"Plumber", "Electrician", "Handyman", "Locksmith", "Painter"}
	p.ServiceProviders.Areas = []string{"Randburg", "Midrand", "Centurion", "Bellville", "Umhlanga"}
	p.Tutors.Subjects = []string{"Math", "Science", "English", "Accounting", "Physics"}
	p.Tutors.Areas = []string{"Sandton", "Cape Town", "Durban", "Pretoria", "Johannesburg"}
	return p
}

// LoadProfile reads a profile from a YAML file. Pools left empty in the
// file fall back to the defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, eris.Wrapf(err, "collect: read profile %s", path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, eris.Wrapf(err, "collect: parse profile %s", path)
	}

	defaults := DefaultProfile()
	if len(p.RealEstate.Areas) == 0 {
		p.RealEstate.Areas = defaults.RealEstate.Areas
	}
	if len(p.RealEstate.Agencies) == 0 {
		p.RealEstate.Agencies = defaults.RealEstate.Agencies
	}
	if len(p.ServiceProviders.Services) == 0 {
		p.ServiceProviders.Services = defaults.ServiceProviders.Services
	}
	if len(p.ServiceProviders.Areas) == 0 {
		p.ServiceProviders.Areas = defaults.ServiceProviders.Areas
	}
	if len(p.Tutors.Subjects) == 0 {
		p.Tutors.Subjects = defaults.Tutors.Subjects
	}
	if len(p.Tutors.Areas) == 0 {
		p.Tutors.Areas = defaults.Tutors.Areas
	}
	return p, nil
}
