package constants

import "strings"

// Codes de classe du collège : niveaux 1AM à 4AM, cinq sections chacun.
var ClassesChoices = []string{
	"1am1", "1am2", "1am3", "1am4", "1am5",
	"2am1", "2am2", "2am3", "2am4", "2am5",
	"3am1", "3am2", "3am3", "3am4", "3am5",
	"4am1", "4am2", "4am3", "4am4", "4am5",
}

var classesSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ClassesChoices))
	for _, c := range ClassesChoices {
		m[c] = struct{}{}
	}
	return m
}()

func IsValidClasse(code string) bool {
	_, ok := classesSet[strings.ToLower(strings.TrimSpace(code))]
	return ok
}
