package iplog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/eclipse-ebr/ebr-cli/pkg/log"
)

const FileName = "ip_log.xml"

// Read parses an ip_log.xml file. A missing file yields a nil document and no error.
func Read(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read ip_log.xml file '%s': %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("unable to read ip_log.xml file '%s': no root element", path)
	}
	return doc, nil
}

// WriteFile stores doc at path. An existing file is only replaced when force is set, otherwise
// a warning is logged and false is returned.
func WriteFile(doc *etree.Document, path string, force bool) (bool, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() && !force {
		log.Warnf("Found existing ip_log.xml file at '%s'. %s", path, RequiresForceMessage)
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("unable to write ip_log.xml file '%s': %w", path, err)
	}

	doc.Indent(2)
	if err := doc.WriteToFile(path); err != nil {
		return false, fmt.Errorf("unable to write ip_log.xml file '%s': %w", path, err)
	}
	return true, nil
}

// RequiresForceMessage is appended to warnings about files that are kept.
const RequiresForceMessage = "Please set the force property to true in order to update/overwrite it."

func newDocument() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ip_log")
	root.CreateAttr("version", "1.0")
	return doc, root
}

func projects(doc *etree.Document) []*etree.Element {
	if doc == nil || doc.Root() == nil {
		return nil
	}
	return doc.Root().SelectElements("project")
}

func firstProject(doc *etree.Document) *etree.Element {
	if doc == nil || doc.Root() == nil {
		return nil
	}
	return doc.Root().SelectElement("project")
}

// childText returns the trimmed text of a child element and whether the element exists.
func childText(parent *etree.Element, tag string) (string, bool) {
	if parent == nil {
		return "", false
	}
	child := parent.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return strings.TrimSpace(child.Text()), true
}

// createChild adds <tag>value</tag> unless the value is absent.
func createChild(parent *etree.Element, tag string, value string, present bool) {
	if !present {
		return
	}
	parent.CreateElement(tag).SetText(value)
}
