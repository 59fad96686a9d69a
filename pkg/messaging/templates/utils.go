package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	textTemplate "text/template"
)

// ResolveTemplate renders an HTML template, escaping every value from contentInfos.
func ResolveTemplate(tempName string, templateDef string, contentInfos map[string]string) (content string, err error) {
	if strings.TrimSpace(templateDef) == "" {
		return "", errors.New("empty template `" + tempName + "`")
	}
	tmpl, err := template.New(tempName).Option("missingkey=error").Parse(templateDef)
	if err != nil {
		err = fmt.Errorf("error when parsing template %s: %v", tempName, err)
		return "", err
	}
	var tpl bytes.Buffer

	err = tmpl.Execute(&tpl, contentInfos)
	if err != nil {
		err = fmt.Errorf("error during executing template %s: %v", tempName, err)
		return "", err
	}
	return tpl.String(), nil
}

// ResolveTextTemplate renders a plain text template, used for SMS bodies.
func ResolveTextTemplate(tempName string, templateDef string, contentInfos map[string]string) (content string, err error) {
	if strings.TrimSpace(templateDef) == "" {
		return "", errors.New("empty template `" + tempName + "`")
	}
	tmpl, err := textTemplate.New(tempName).Option("missingkey=error").Parse(templateDef)
	if err != nil {
		err = fmt.Errorf("error when parsing template %s: %v", tempName, err)
		return "", err
	}
	var tpl bytes.Buffer

	err = tmpl.Execute(&tpl, contentInfos)
	if err != nil {
		err = fmt.Errorf("error during executing template %s: %v", tempName, err)
		return "", err
	}
	return tpl.String(), nil
}

// CheckTemplatesParsable parses each template so broken definitions are caught at startup.
func CheckTemplatesParsable(defs map[string]string) error {
	for name, def := range defs {
		if strings.TrimSpace(def) == "" {
			return errors.New("empty template `" + name + "`")
		}
		if _, err := template.New(name).Parse(def); err != nil {
			return fmt.Errorf("could not parse template `%s`: %v", name, err)
		}
	}
	return nil
}
