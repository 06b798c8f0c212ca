package gdocs

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/docsforge/google-docs-mcp/internal/auth"
)

// Client is a stateless wrapper around the Google Docs API service.
// One Client is constructed per inbound request from that request's
// credentials; nothing is shared across requests.
type Client struct {
	svc *docs.Service
}

// NewClient creates a Docs client authenticated with the given per-request
// credentials. Extra options are appended after the token source, so tests
// can redirect the client at a local endpoint.
func NewClient(ctx context.Context, creds auth.Credentials, opts ...option.ClientOption) (*Client, error) {
	if creds.AccessToken == "" {
		return nil, auth.ErrMissingToken
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken})
	clientOpts := append([]option.ClientOption{option.WithTokenSource(tokenSource)}, opts...)

	svc, err := docs.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// Get retrieves the full document snapshot by ID.
func (c *Client) Get(ctx context.Context, documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	doc, err := c.svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, classifyError(err)
	}
	return doc, nil
}

// Create creates a new, empty document with the given title.
func (c *Client) Create(ctx context.Context, title string) (*docs.Document, error) {
	doc, err := c.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, classifyError(err)
	}
	return doc, nil
}

// NamedRanges returns the document's named ranges, keyed by name.
func (c *Client) NamedRanges(ctx context.Context, documentID string) (map[string]docs.NamedRanges, error) {
	doc, err := c.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return doc.NamedRanges, nil
}

// BatchUpdate submits an ordered sequence of operations against one
// document. It is the sole mutating primitive: every other mutator on the
// Client builds its requests and passes them through here, so marshaling
// and error classification live in exactly one place. The remote service
// applies the sequence atomically and returns one reply per operation,
// positionally aligned.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	return c.batchUpdate(ctx, documentID, requests, nil)
}

// BatchUpdateWithRevision is BatchUpdate guarded by optimistic concurrency:
// the remote service rejects the whole sequence unless the document is
// still at requiredRevisionID.
func (c *Client) BatchUpdateWithRevision(ctx context.Context, documentID string, requests []*docs.Request, requiredRevisionID string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.batchUpdate(ctx, documentID, requests, &docs.WriteControl{RequiredRevisionId: requiredRevisionID})
}

func (c *Client) batchUpdate(ctx context.Context, documentID string, requests []*docs.Request, wc *docs.WriteControl) (*docs.BatchUpdateDocumentResponse, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("at least one request is required")
	}

	req := &docs.BatchUpdateDocumentRequest{
		Requests:     requests,
		WriteControl: wc,
	}

	resp, err := c.svc.Documents.BatchUpdate(documentID, req).Context(ctx).Do()
	if err != nil {
		return nil, classifyError(err)
	}
	return resp, nil
}

// InsertText inserts text at the given index. Index 1 is the start of the
// document body.
func (c *Client) InsertText(ctx context.Context, documentID, text string, index int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Text:     text,
			Location: &docs.Location{Index: index},
		},
	}})
}

// Append inserts text at the end of the document body. This is the one
// compound operation: it reads the document to find the end of the last
// structural element, then inserts just before the trailing implicit
// newline. The read and the insert are two separate calls; a concurrent
// writer can invalidate the computed index between them, and no revision
// guard is applied on this path.
func (c *Client) Append(ctx context.Context, documentID, text string) (*docs.BatchUpdateDocumentResponse, error) {
	doc, err := c.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return c.InsertText(ctx, documentID, text, appendIndex(doc))
}

// appendIndex computes the insertion point for an append: one before the
// end of the last body element, to land before the document's trailing
// implicit newline. Never less than 1.
func appendIndex(doc *docs.Document) int64 {
	var end int64
	if doc.Body != nil && len(doc.Body.Content) > 0 {
		end = doc.Body.Content[len(doc.Body.Content)-1].EndIndex
	}
	if end-1 < 1 {
		return 1
	}
	return end - 1
}

// DeleteRange deletes the content between startIndex (inclusive) and
// endIndex (exclusive).
func (c *Client) DeleteRange(ctx context.Context, documentID string, startIndex, endIndex int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
		},
	}})
}

// ReplaceAllText replaces every occurrence of find with replace.
func (c *Client) ReplaceAllText(ctx context.Context, documentID, find, replace string, matchCase bool) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		ReplaceAllText: &docs.ReplaceAllTextRequest{
			ContainsText: &docs.SubstringMatchCriteria{
				Text:      find,
				MatchCase: matchCase,
			},
			ReplaceText: replace,
		},
	}})
}

// InsertPageBreak inserts a page break at the given index.
func (c *Client) InsertPageBreak(ctx context.Context, documentID string, index int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertPageBreak: &docs.InsertPageBreakRequest{
			Location: &docs.Location{Index: index},
		},
	}})
}

// UpdateTextStyle applies the given text style to a range. The fields mask
// names which style fields to touch, matching the wire contract.
func (c *Client) UpdateTextStyle(ctx context.Context, documentID string, startIndex, endIndex int64, style *docs.TextStyle, fields string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
			TextStyle: style,
			Fields:    fields,
		},
	}})
}

// UpdateParagraphStyle applies the given paragraph style to a range.
func (c *Client) UpdateParagraphStyle(ctx context.Context, documentID string, startIndex, endIndex int64, style *docs.ParagraphStyle, fields string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
			ParagraphStyle: style,
			Fields:         fields,
		},
	}})
}

// CreateBullets applies a bullet preset to the paragraphs in a range.
func (c *Client) CreateBullets(ctx context.Context, documentID string, startIndex, endIndex int64, preset string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
			BulletPreset: preset,
		},
	}})
}

// DeleteBullets removes bullets from the paragraphs in a range.
func (c *Client) DeleteBullets(ctx context.Context, documentID string, startIndex, endIndex int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteParagraphBullets: &docs.DeleteParagraphBulletsRequest{
			Range: &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
		},
	}})
}

// InsertTable inserts a rows x columns table at the given index.
func (c *Client) InsertTable(ctx context.Context, documentID string, index, rows, columns int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertTable: &docs.InsertTableRequest{
			Rows:     rows,
			Columns:  columns,
			Location: &docs.Location{Index: index},
		},
	}})
}

// InsertTableRow inserts a row next to the referenced cell.
func (c *Client) InsertTableRow(ctx context.Context, documentID string, cell *docs.TableCellLocation, insertBelow bool) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertTableRow: &docs.InsertTableRowRequest{
			TableCellLocation: cell,
			InsertBelow:       insertBelow,
		},
	}})
}

// InsertTableColumn inserts a column next to the referenced cell.
func (c *Client) InsertTableColumn(ctx context.Context, documentID string, cell *docs.TableCellLocation, insertRight bool) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertTableColumn: &docs.InsertTableColumnRequest{
			TableCellLocation: cell,
			InsertRight:       insertRight,
		},
	}})
}

// DeleteTableRow deletes the row containing the referenced cell.
func (c *Client) DeleteTableRow(ctx context.Context, documentID string, cell *docs.TableCellLocation) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteTableRow: &docs.DeleteTableRowRequest{TableCellLocation: cell},
	}})
}

// DeleteTableColumn deletes the column containing the referenced cell.
func (c *Client) DeleteTableColumn(ctx context.Context, documentID string, cell *docs.TableCellLocation) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteTableColumn: &docs.DeleteTableColumnRequest{TableCellLocation: cell},
	}})
}

// UpdateTableCellStyle applies a cell style to the cells in a table range.
func (c *Client) UpdateTableCellStyle(ctx context.Context, documentID string, tableRange *docs.TableRange, style *docs.TableCellStyle, fields string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		UpdateTableCellStyle: &docs.UpdateTableCellStyleRequest{
			TableRange:     tableRange,
			TableCellStyle: style,
			Fields:         fields,
		},
	}})
}

// MergeTableCells merges the cells in a table range into one.
func (c *Client) MergeTableCells(ctx context.Context, documentID string, tableRange *docs.TableRange) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		MergeTableCells: &docs.MergeTableCellsRequest{TableRange: tableRange},
	}})
}

// UnmergeTableCells splits previously merged cells in a table range.
func (c *Client) UnmergeTableCells(ctx context.Context, documentID string, tableRange *docs.TableRange) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		UnmergeTableCells: &docs.UnmergeTableCellsRequest{TableRange: tableRange},
	}})
}

// InsertInlineImage inserts an image from a publicly accessible URI at the
// given index. Width and height are in points; zero means let the service
// pick the image's natural size.
func (c *Client) InsertInlineImage(ctx context.Context, documentID, uri string, index int64, widthPt, heightPt float64) (*docs.BatchUpdateDocumentResponse, error) {
	req := &docs.InsertInlineImageRequest{
		Uri:      uri,
		Location: &docs.Location{Index: index},
	}
	if widthPt > 0 && heightPt > 0 {
		req.ObjectSize = &docs.Size{
			Width:  &docs.Dimension{Magnitude: widthPt, Unit: "PT"},
			Height: &docs.Dimension{Magnitude: heightPt, Unit: "PT"},
		}
	}
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{InsertInlineImage: req}})
}

// ReplaceImage swaps the image behind an existing image object for the one
// at the given URI.
func (c *Client) ReplaceImage(ctx context.Context, documentID, imageObjectID, uri string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		ReplaceImage: &docs.ReplaceImageRequest{
			ImageObjectId: imageObjectID,
			Uri:           uri,
		},
	}})
}

// DeletePositionedObject removes a positioned object (e.g. a wrapped image)
// from the document.
func (c *Client) DeletePositionedObject(ctx context.Context, documentID, objectID string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeletePositionedObject: &docs.DeletePositionedObjectRequest{ObjectId: objectID},
	}})
}

// CreateNamedRange names the span between startIndex and endIndex.
func (c *Client) CreateNamedRange(ctx context.Context, documentID, name string, startIndex, endIndex int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		CreateNamedRange: &docs.CreateNamedRangeRequest{
			Name:  name,
			Range: &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
		},
	}})
}

// DeleteNamedRange deletes a named range by ID or by name. The caller must
// supply at least one identifier; the tool layer enforces that before the
// call reaches here.
func (c *Client) DeleteNamedRange(ctx context.Context, documentID, namedRangeID, name string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteNamedRange: &docs.DeleteNamedRangeRequest{
			NamedRangeId: namedRangeID,
			Name:         name,
		},
	}})
}

// ReplaceNamedRangeContent replaces the content of a named range, addressed
// by ID or by name, with the given text.
func (c *Client) ReplaceNamedRangeContent(ctx context.Context, documentID, namedRangeID, name, text string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		ReplaceNamedRangeContent: &docs.ReplaceNamedRangeContentRequest{
			NamedRangeId:   namedRangeID,
			NamedRangeName: name,
			Text:           text,
		},
	}})
}

// CreateHeader creates a header of the given type (e.g. "DEFAULT").
func (c *Client) CreateHeader(ctx context.Context, documentID, headerType string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		CreateHeader: &docs.CreateHeaderRequest{Type: headerType},
	}})
}

// CreateFooter creates a footer of the given type.
func (c *Client) CreateFooter(ctx context.Context, documentID, footerType string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		CreateFooter: &docs.CreateFooterRequest{Type: footerType},
	}})
}

// DeleteHeader deletes the header with the given ID.
func (c *Client) DeleteHeader(ctx context.Context, documentID, headerID string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteHeader: &docs.DeleteHeaderRequest{HeaderId: headerID},
	}})
}

// DeleteFooter deletes the footer with the given ID.
func (c *Client) DeleteFooter(ctx context.Context, documentID, footerID string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		DeleteFooter: &docs.DeleteFooterRequest{FooterId: footerID},
	}})
}

// CreateFootnote inserts a footnote reference at the given index.
func (c *Client) CreateFootnote(ctx context.Context, documentID string, index int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		CreateFootnote: &docs.CreateFootnoteRequest{
			Location: &docs.Location{Index: index},
		},
	}})
}

// UpdateDocumentStyle updates document-level style (margins, page size).
func (c *Client) UpdateDocumentStyle(ctx context.Context, documentID string, style *docs.DocumentStyle, fields string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		UpdateDocumentStyle: &docs.UpdateDocumentStyleRequest{
			DocumentStyle: style,
			Fields:        fields,
		},
	}})
}
