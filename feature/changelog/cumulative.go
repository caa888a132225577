package changelog

import (
	"sort"
	"strings"
	"time"

	"fontdb/core/models"
)

const (
	changelogTitle       = "# Font Database Changelog"
	changelogDescription = "All notable changes to the font database are documented in this file."
	sectionPrefix        = "## ["
	sectionSeparator     = "---"
)

// SectionHeading returns the heading of the section for version.
func SectionHeading(version string, date time.Time) string {
	return sectionPrefix + version + "] - " + date.Format(time.DateOnly)
}

// Merge returns the cumulative changelog with a section for version. An
// existing section for the same version is replaced. Sections are ordered
// newest version first and separated by a rule.
func Merge(existing, version string, date time.Time, notes string) string {
	sections := []string{SectionHeading(version, date) + "\n\n" + strings.TrimRight(notes, "\n")}
	for _, section := range splitSections(existing) {
		if sectionVersion(section) != version {
			sections = append(sections, section)
		}
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return models.CompareVersions(sectionVersion(sections[i]), sectionVersion(sections[j])) > 0
	})

	var b strings.Builder
	b.WriteString(changelogTitle + "\n\n")
	b.WriteString(changelogDescription + "\n\n")
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n" + sectionSeparator + "\n\n")
		}
		b.WriteString(section + "\n")
	}
	return b.String()
}

// Versions lists the versions of the sections in content, in order.
func Versions(content string) []string {
	sections := splitSections(content)
	versions := make([]string, 0, len(sections))
	for _, section := range sections {
		versions = append(versions, sectionVersion(section))
	}
	return versions
}

// splitSections returns the version sections of content without the header
// and without trailing separators.
func splitSections(content string) []string {
	var (
		sections []string
		current  []string
	)
	flush := func() {
		if current == nil {
			return
		}
		body := strings.TrimRight(strings.Join(current, "\n"), "\n ")
		body = strings.TrimSuffix(body, sectionSeparator)
		sections = append(sections, strings.TrimRight(body, "\n "))
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, sectionPrefix) {
			flush()
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	flush()
	return sections
}

func sectionVersion(section string) string {
	heading, _, _ := strings.Cut(section, "\n")
	version, _, ok := strings.Cut(strings.TrimPrefix(heading, sectionPrefix), "]")
	if !ok {
		return ""
	}
	return version
}
