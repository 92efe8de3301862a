package server

import (
	"context"
	"strings"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/document"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/position"
)

// translateDiagnostics converts a native diagnostics array response into
// LSP diagnostics against lines. A diagnostic entry missing an offset, or
// whose offset doesn't resolve against lines, is dropped rather than
// raised: a translation absence is an empty result, never a fault.
func translateDiagnostics(diags []*bridge.Response, lines *position.LineTable) []lsp.Diagnostic {
	out := make([]lsp.Diagnostic, 0, len(diags))
	for _, d := range diags {
		offset, ok := d.Int(bridge.KeyOffset)
		if !ok {
			continue
		}
		length, _ := d.Int(bridge.KeyLength)

		start, ok := lines.LineAndUTF16Column(position.Offset(offset))
		if !ok {
			continue
		}
		end, ok := lines.LineAndUTF16Column(position.Offset(offset + length))
		if !ok {
			end = start
		}

		diag := lsp.Diagnostic{
			Range:   lsp.RangeFromInternal(position.Range{Start: start, End: end}),
			Source:  "swiftls",
			Message: strings.TrimSpace(firstString(d, bridge.KeyDescription)),
		}
		if sevUID, ok := d.UID(bridge.KeySeverity); ok {
			if sev, ok := bridge.Severity(sevUID); ok {
				diag.Severity = sev
			}
		}
		out = append(out, diag)
	}
	return out
}

func firstString(r *bridge.Response, key string) string {
	s, _ := r.String(key)
	return s
}

// publishDiagnostics sends diags for uri, unconditionally: an empty slice
// still goes out, clearing any prior published set, which is the only way
// a client learns diagnostics have been resolved.
func (s *server) publishDiagnostics(ctx context.Context, uri lsp.DocumentURI, version int32, diags []lsp.Diagnostic) {
	s.diagnosticsMu.Lock()
	if len(diags) > 0 {
		s.publishedNonEmpty[uri] = true
	} else {
		delete(s.publishedNonEmpty, uri)
	}
	s.diagnosticsMu.Unlock()

	v := version
	if err := s.client.PublishDiagnostics(ctx, &lsp.PublishDiagnosticsParams{
		URI:         uri,
		Version:     &v,
		Diagnostics: diags,
	}); err != nil {
		s.logger.Printf("error publishing diagnostics for %q: %v", uri, err)
	}
}

// clearDiagnostics publishes an empty diagnostics set for uri, used on
// didClose and shutdown so a closed document doesn't leave stale
// diagnostics in the client's UI.
func (s *server) clearDiagnostics(ctx context.Context, uri lsp.DocumentURI) {
	s.diagnosticsMu.Lock()
	_, hadAny := s.publishedNonEmpty[uri]
	delete(s.publishedNonEmpty, uri)
	s.diagnosticsMu.Unlock()
	if !hadAny {
		return
	}
	if err := s.client.PublishDiagnostics(ctx, &lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: []lsp.Diagnostic{}}); err != nil {
		s.logger.Printf("error clearing diagnostics for %q: %v", uri, err)
	}
}

// diagnoseResponse translates and publishes the diagnostics carried by a
// native-bridge response for snap, a bridge response to editor.open or
// editor.replacetext. Every call site hands it straight off, so this is the
// single place response shape meets the wire shape.
func (s *server) diagnoseResponse(ctx context.Context, snap *document.Snapshot, resp *bridge.Response) {
	doc := snap.Document()
	diagResps, _ := resp.Array(bridge.KeyDiagnostics)
	diags := translateDiagnostics(diagResps, snap.Lines())
	s.publishDiagnostics(ctx, lsp.DocumentURI(doc.URI), doc.Version, diags)
}

// handleNotification is the bridge's single process-lifetime notification
// sink, installed once in New. It runs directly on the bridge's own
// notification-handler goroutine rather than being re-posted onto a
// separate dispatcher queue: the document manager and the active-requests
// registry are already internally synchronized, so introducing a generic
// job queue here would buy nothing but an extra moving part.
func (s *server) handleNotification(resp *bridge.Response) {
	kind, ok := resp.UID(bridge.KeyNotification)
	if !ok || kind != bridge.NotificationDocumentUpdate {
		return
	}
	name, ok := resp.String(bridge.KeyName)
	if !ok {
		return
	}

	ctx := lsp.WithClient(context.Background(), s.client)
	snap, ok := s.docs.Latest(name)
	if !ok {
		return
	}

	// A zero-length replace-text at offset 0 is the canonical "refresh
	// diagnostics" request: it mutates nothing but still provokes a fresh
	// diagnostics batch from the native analyzer.
	refreshResp, err := s.bridge.EditorReplaceText(ctx, name, 0, 0, "")
	if err != nil {
		s.logger.Printf("error refreshing diagnostics for %q: %v", name, err)
		return
	}
	s.diagnoseResponse(ctx, snap, refreshResp)
}
