package utils

import (
	"fmt"
	"strings"
)

func GenerateStyleLink(href string, dynamicAttrs map[string]string) string {
	parts := []string{fmt.Sprintf("<link rel=\"stylesheet\" href=\"%s\"", href)}
	for key, value := range dynamicAttrs {
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", key, value))
	}
	return strings.Join(parts, " ") + " />"
}

func GenerateScriptTag(src string, dynamicAttrs map[string]string) string {
	parts := []string{fmt.Sprintf("<script type=\"module\" src=\"%s\"", src)}
	for key, value := range dynamicAttrs {
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", key, value))
	}
	return strings.Join(parts, " ") + "></script>"
}
