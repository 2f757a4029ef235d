package vcd

import (
	"encoding/xml"
	"fmt"
)

const vcloudNamespace = "http://www.vmware.com/vcloud/v1.5"

const (
	contentTypeAdminCatalog = "application/vnd.vmware.admin.catalog+xml"
	contentTypeUploadParams = "application/vnd.vmware.vcloud.uploadVAppTemplateParams+xml"
)

type adminCatalogParams struct {
	XMLName     xml.Name `xml:"http://www.vmware.com/vcloud/v1.5 AdminCatalog"`
	Name        string   `xml:"name,attr"`
	Description string   `xml:"Description"`
}

type uploadVAppTemplateParams struct {
	XMLName     xml.Name `xml:"http://www.vmware.com/vcloud/v1.5 UploadVAppTemplateParams"`
	Name        string   `xml:"name,attr"`
	SourceHref  string   `xml:"sourceHref,attr"`
	Description string   `xml:"Description"`
}

func marshalXML(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
