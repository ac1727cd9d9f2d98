package config

// DefaultReadmeTemplate is rendered with {project_name}, {date} and {status}
const DefaultReadmeTemplate = `# {project_name}
Created: {date}
Status: {status}

## Description
Add project description here.

## Structure
- _docs/ - Documentation, datasheets, images, notes
- hardware/ - Schematics, PCB, BOM, production files
- software/ - Source code and firmware
- cad/ - Models, 3D printing, drawings
- builds/ - Build outputs and releases
`

// GetDefault returns the default configuration
func GetDefault() *Config {
	createReadme := true

	return &Config{
		LogLevel: "info",
		MasterFolders: []MasterFolder{
			{Name: "ONGOING", Description: "Active projects in development"},
			{Name: "IDEAS", Description: "Project concepts and future plans"},
			{Name: "HOLD", Description: "Temporarily paused projects"},
			{Name: "DONE", Description: "Completed projects"},
			{Name: "Test_Lab", Description: "Code snippet experiments and test projects"},
			{Name: "Code_Vault", Description: "Code snippets, libraries, ready to go"},
		},
		ProjectStructure: map[string]StructureFolder{
			"_docs": {
				Description: "Documentation and reference materials",
				Subfolders: Subfolders{
					{Name: "datasheets"}, {Name: "images"}, {Name: "notes"}, {Name: "references"},
				},
			},
			"hardware": {
				Description: "Hardware-related files",
				Subfolders: Subfolders{
					{Name: "schematics"}, {Name: "pcb"}, {Name: "bom"},
					{Name: "production", Children: []string{"gerber", "assembly"}},
				},
			},
			"software": {
				Description: "Software and firmware",
			},
			"cad": {
				Description: "CAD files and 3D printing",
				Subfolders: Subfolders{
					{Name: "models"},
					{Name: "3dprint", Children: []string{"stl", "gcode"}},
					{Name: "drawings"},
				},
			},
			"builds": {
				Description: "Build outputs and releases",
			},
		},
		FileCategories: FileCategories{
			{Name: "code", Subcategories: []Subcategory{
				{Name: "programming", Extensions: []string{
					".py", ".js", ".ts", ".html", ".css", ".c", ".cpp", ".h", ".hpp",
					".ino", ".go", ".rs", ".java", ".sh",
				}},
			}},
			{Name: "documents", Subcategories: []Subcategory{
				{Name: "notes", Extensions: []string{".md", ".txt", ".rst"}},
				{Name: "office_docs", Extensions: []string{".doc", ".docx", ".odt", ".ppt", ".pptx", ".rtf"}},
				{Name: "technical", Extensions: []string{".pdf"}},
			}},
			{Name: "images", Subcategories: []Subcategory{
				{Name: "photos", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".heic", ".tif", ".tiff"}},
				{Name: "graphics", Extensions: []string{".svg", ".ico", ".webp"}},
			}},
			{Name: "data", Subcategories: []Subcategory{
				{Name: "structured", Extensions: []string{".json", ".xml", ".yaml", ".yml"}},
				{Name: "tabular", Extensions: []string{".csv", ".tsv", ".xls", ".xlsx", ".ods"}},
				{Name: "database", Extensions: []string{".db", ".sqlite", ".sql"}},
			}},
			{Name: "media", Subcategories: []Subcategory{
				{Name: "audio", Extensions: []string{".mp3", ".wav", ".flac", ".ogg"}},
				{Name: "video", Extensions: []string{".mp4", ".mov", ".avi", ".mkv"}},
			}},
			{Name: "design", Subcategories: []Subcategory{
				{Name: "cad", Extensions: []string{
					".step", ".stp", ".stl", ".iges", ".igs", ".f3d", ".dxf", ".dwg", ".scad", ".3mf",
				}},
				{Name: "design_tools", Extensions: []string{".psd", ".ai", ".fig", ".xd", ".sketch", ".kra"}},
			}},
			{Name: "archives", Extensions: []string{".zip", ".tar", ".gz", ".7z", ".rar", ".bin", ".hex", ".uf2"}},
			{Name: "config", Extensions: []string{".ini", ".toml", ".cfg", ".conf"}},
		},
		CategoryTargets: []CategoryTarget{
			{Category: "code", Subcategory: "programming", Target: "software/src"},
			{Category: "documents", Subcategory: "notes", Target: "_docs/notes"},
			{Category: "documents", Subcategory: "office_docs", Target: "_docs/references"},
			{Category: "documents", Subcategory: "technical", Target: "_docs/datasheets"},
			{Category: "images", Subcategory: "*", Target: "_docs/images"},
			{Category: "data", Subcategory: "structured", Target: "_docs/data"},
			{Category: "data", Subcategory: "tabular", Target: "_docs/data"},
			{Category: "data", Subcategory: "database", Target: "software/db"},
			{Category: "media", Subcategory: "*", Target: "_docs/media"},
			{Category: "design", Subcategory: "cad", Target: "cad/models"},
			{Category: "design", Subcategory: "design_tools", Target: "_docs/design"},
			{Category: "archives", Target: "builds"},
			{Category: "config", Target: "software/config"},
		},
		NamingPatterns: map[string]NamingPattern{
			"snake_case": {
				Formatter:   "snake_case",
				Description: "snake_case: component_name_001",
				Example:     "motor_mount_cad_001",
			},
			"PascalCase": {
				Formatter:   "pascal_case",
				Description: "PascalCase: ComponentName001",
				Example:     "MotorMountCad001",
			},
		},
		Defaults: Defaults{
			Status:         "ONGOING",
			CreateReadme:   &createReadme,
			ReadmeTemplate: DefaultReadmeTemplate,
		},
		SoftwareProjectMarkers: Markers{
			Files: []string{
				"platformio.ini",
				"CMakeLists.txt",
				"Makefile",
				"package.json",
				"requirements.txt",
				"setup.py",
				"pyproject.toml",
			},
			Directories: []string{
				"src",
				"include",
				"lib",
				"test",
			},
		},
		PreservedSoftwareStructure: []string{
			"src",
			"include",
			"lib",
			"test",
			".pio",
			".vscode",
			"boards",
			"scripts",
			"data",
		},
		IgnorePatterns: []string{
			`\.`,             // hidden files and directories
			`__pycache__$`,   // Python cache
			`.*\.pyc$`,       // Python compiled files
			`.*\.o$`,         // object files
			`.*\.exe$`,       // executables
			`node_modules$`,  // Node.js modules
			`\.git$`,         // Git directory
			`\.svn$`,         // SVN directory
			`\.DS_Store$`,    // macOS files
			`Thumbs\.db$`,    // Windows thumbnail cache
			`desktop\.ini$`,  // Windows folder settings
			`.*~$`,           // editor backups
		},
	}
}

// GetExampleConfig returns an example user configuration with comments
func GetExampleConfig() string {
	return `# Project Forge configuration
# Location: ~/.config/project-forge/config.yaml
#
# Anything left out falls back to the built-in defaults. Mappings
# (file_categories, category_targets, naming_patterns, project_structure)
# are merged entry by entry; lists (ignore_patterns, master_folders, ...)
# replace the default list when present.

base_path: ~/Projects
log_level: info

# Add an extension group without repeating the defaults
file_categories:
  electronics:
    kicad: [.kicad_pcb, .kicad_sch, .kicad_pro]

category_targets:
  - category: electronics
    subcategory: kicad
    target: hardware/pcb

naming_patterns:
  snake_case:
    formatter: snake_case
    description: "snake_case: component_name_001"

defaults:
  status: ONGOING
  create_readme: true
`
}
