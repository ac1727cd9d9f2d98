package config

// Merge returns base with override applied on top. Neither input is
// modified. The policy per key:
//
//   - scalars (base_path, log_level, defaults.*): override wins when set
//   - file_categories: merged by category name, nested categories by
//     subcategory name; unknown categories are appended in override order.
//     A category that changes shape (flat vs nested) is replaced.
//   - category_targets: merged by (category, subcategory)
//   - naming_patterns, project_structure: merged by key, entry replaced
//   - lists (master_folders, ignore_patterns, preserved_software_structure,
//     software_project_markers.files/directories): replaced when present,
//     an explicit empty list clears the default
func Merge(base, override *Config) *Config {
	out := base.clone()
	if override == nil {
		return out
	}

	if override.BasePath != "" {
		out.BasePath = override.BasePath
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}

	if override.MasterFolders != nil {
		out.MasterFolders = append([]MasterFolder(nil), override.MasterFolders...)
	}

	for name, folder := range override.ProjectStructure {
		if out.ProjectStructure == nil {
			out.ProjectStructure = make(map[string]StructureFolder)
		}
		out.ProjectStructure[name] = folder
	}

	out.FileCategories = mergeCategories(out.FileCategories, override.FileCategories)
	out.CategoryTargets = mergeTargets(out.CategoryTargets, override.CategoryTargets)

	for name, p := range override.NamingPatterns {
		if out.NamingPatterns == nil {
			out.NamingPatterns = make(map[string]NamingPattern)
		}
		out.NamingPatterns[name] = p
	}

	if override.Defaults.Status != "" {
		out.Defaults.Status = override.Defaults.Status
	}
	if override.Defaults.CreateReadme != nil {
		v := *override.Defaults.CreateReadme
		out.Defaults.CreateReadme = &v
	}
	if override.Defaults.ReadmeTemplate != "" {
		out.Defaults.ReadmeTemplate = override.Defaults.ReadmeTemplate
	}

	if override.SoftwareProjectMarkers.Files != nil {
		out.SoftwareProjectMarkers.Files = append([]string(nil), override.SoftwareProjectMarkers.Files...)
	}
	if override.SoftwareProjectMarkers.Directories != nil {
		out.SoftwareProjectMarkers.Directories = append([]string(nil), override.SoftwareProjectMarkers.Directories...)
	}
	if override.PreservedSoftwareStructure != nil {
		out.PreservedSoftwareStructure = append([]string(nil), override.PreservedSoftwareStructure...)
	}
	if override.IgnorePatterns != nil {
		out.IgnorePatterns = append([]string(nil), override.IgnorePatterns...)
	}

	return out
}

func mergeCategories(base, override FileCategories) FileCategories {
	out := make(FileCategories, len(base))
	copy(out, base)

	for _, oc := range override {
		idx := -1
		for i, bc := range out {
			if bc.Name == oc.Name {
				idx = i
				break
			}
		}

		switch {
		case idx < 0:
			out = append(out, oc.clone())
		case oc.IsFlat() || out[idx].IsFlat():
			out[idx] = oc.clone()
		default:
			out[idx] = Category{
				Name:          oc.Name,
				Subcategories: mergeSubcategories(out[idx].Subcategories, oc.Subcategories),
			}
		}
	}

	return out
}

func mergeSubcategories(base, override []Subcategory) []Subcategory {
	out := make([]Subcategory, 0, len(base)+len(override))
	for _, s := range base {
		out = append(out, Subcategory{Name: s.Name, Extensions: append([]string(nil), s.Extensions...)})
	}

	for _, os := range override {
		replaced := false
		for i := range out {
			if out[i].Name == os.Name {
				out[i].Extensions = append([]string(nil), os.Extensions...)
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, Subcategory{Name: os.Name, Extensions: append([]string(nil), os.Extensions...)})
		}
	}

	return out
}

func mergeTargets(base, override []CategoryTarget) []CategoryTarget {
	out := append([]CategoryTarget(nil), base...)

	for _, ot := range override {
		replaced := false
		for i := range out {
			if out[i].Category == ot.Category && out[i].Subcategory == ot.Subcategory {
				out[i].Target = ot.Target
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, ot)
		}
	}

	return out
}

func (c *Config) clone() *Config {
	out := *c

	out.MasterFolders = append([]MasterFolder(nil), c.MasterFolders...)
	out.CategoryTargets = append([]CategoryTarget(nil), c.CategoryTargets...)
	out.PreservedSoftwareStructure = append([]string(nil), c.PreservedSoftwareStructure...)
	out.IgnorePatterns = append([]string(nil), c.IgnorePatterns...)
	out.SoftwareProjectMarkers = Markers{
		Files:       append([]string(nil), c.SoftwareProjectMarkers.Files...),
		Directories: append([]string(nil), c.SoftwareProjectMarkers.Directories...),
	}

	if c.ProjectStructure != nil {
		out.ProjectStructure = make(map[string]StructureFolder, len(c.ProjectStructure))
		for k, v := range c.ProjectStructure {
			out.ProjectStructure[k] = v
		}
	}
	if c.NamingPatterns != nil {
		out.NamingPatterns = make(map[string]NamingPattern, len(c.NamingPatterns))
		for k, v := range c.NamingPatterns {
			out.NamingPatterns[k] = v
		}
	}
	if c.Defaults.CreateReadme != nil {
		v := *c.Defaults.CreateReadme
		out.Defaults.CreateReadme = &v
	}

	out.FileCategories = make(FileCategories, 0, len(c.FileCategories))
	for _, cat := range c.FileCategories {
		out.FileCategories = append(out.FileCategories, cat.clone())
	}

	return &out
}

func (c Category) clone() Category {
	out := Category{Name: c.Name}
	if c.Extensions != nil {
		out.Extensions = append([]string{}, c.Extensions...)
	}
	if c.Subcategories != nil {
		out.Subcategories = make([]Subcategory, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			out.Subcategories = append(out.Subcategories, Subcategory{
				Name:       s.Name,
				Extensions: append([]string(nil), s.Extensions...),
			})
		}
	}
	return out
}
