package defs

// Common file names used across the project.
const (
	// PackageJSON is the Node.js manifest merged by every composition.
	PackageJSON = "package.json"

	// RequirementsTXT marks a Python backend; its presence triggers setup guidance.
	RequirementsTXT = "requirements.txt"

	// DockerComposeYAML is the compose file written for containerized projects.
	DockerComposeYAML = "docker-compose.yml"

	// ConfigYAML is the forge tool configuration file.
	ConfigYAML = "config.yaml"
)

// Directory names of a generated project.
const (
	// FrontendDir holds the frontend of a full-stack project.
	FrontendDir = "frontend"

	// BackendDir holds the backend of a full-stack or backend-only project.
	BackendDir = "backend"

	// ConfigDirName is the forge directory under the user configuration root.
	ConfigDirName = "forge"
)
