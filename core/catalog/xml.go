package catalog

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/passage/core/errors"
)

// XML catalogs look like:
//
//	<versification id="KJV">
//	  <book osis="Gen" name="Genesis" position="1">
//	    <chapter verses="31"/>
//	    <chapter verses="25"/>
//	  </book>
//	</versification>
var (
	xpathRoot     = xpath.MustCompile("/versification")
	xpathBooks    = xpath.MustCompile("/versification/book")
	xpathChapters = xpath.MustCompile("chapter")
)

func parseXML(data []byte) (Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return Document{}, &errors.ParseError{Format: "XML catalog", Message: err.Error(), Err: err}
	}

	top := xmlquery.QuerySelector(root, xpathRoot)
	if top == nil {
		return Document{}, errors.NewParse("XML catalog", "", "missing <versification> root element")
	}

	doc := Document{ID: strings.TrimSpace(top.SelectAttr("id"))}
	for i, book := range xmlquery.QuerySelectorAll(root, xpathBooks) {
		bd := BookData{
			OSIS: strings.TrimSpace(book.SelectAttr("osis")),
			Name: strings.TrimSpace(book.SelectAttr("name")),
		}
		if pos := strings.TrimSpace(book.SelectAttr("position")); pos != "" {
			n, err := strconv.Atoi(pos)
			if err != nil {
				return Document{}, errors.NewParse("XML catalog", "", "book "+strconv.Itoa(i+1)+": bad position "+strconv.Quote(pos))
			}
			bd.Position = n
		}
		for j, ch := range xmlquery.QuerySelectorAll(book, xpathChapters) {
			n, err := strconv.Atoi(strings.TrimSpace(ch.SelectAttr("verses")))
			if err != nil {
				return Document{}, errors.NewParse("XML catalog", "",
					bd.OSIS+" chapter "+strconv.Itoa(j+1)+": bad verses attribute")
			}
			bd.Chapters = append(bd.Chapters, n)
		}
		doc.Books = append(doc.Books, bd)
	}
	return doc, nil
}
