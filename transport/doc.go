// Package transport provides entity serialization strategies for webclient.
//
// A Transport converts typed values to and from request/response bodies and
// advertises the Content-Type it produces. The webclient facade applies the
// transport's content type unless the caller overrides the header.
//
//	client := webclient.ClientOf[Order](web, url,
//	    webclient.WithTransport(transport.NewXML()))
package transport
