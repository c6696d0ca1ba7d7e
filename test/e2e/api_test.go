/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apiv1 "github.com/petrolab/distillation-converter/api/v1"
)

// keroseneRequest returns a seven-point D86 curve of a straight-run
// kerosene cut.
func keroseneRequest() apiv1.ConversionRequest {
	return apiv1.ConversionRequest{
		DistillationData: []apiv1.DistillationPoint{
			{VolumePercent: 0, TemperatureC: 160},
			{VolumePercent: 10, TemperatureC: 170},
			{VolumePercent: 30, TemperatureC: 190},
			{VolumePercent: 50, TemperatureC: 225},
			{VolumePercent: 70, TemperatureC: 260},
			{VolumePercent: 90, TemperatureC: 280},
			{VolumePercent: 100, TemperatureC: 290},
		},
		DensityKgM3: 820,
	}
}

var _ = Describe("Conversion API", Ordered, func() {
	It("should report healthy", func() {
		var health apiv1.HealthResponse
		status, err := getJSON("/health", &health)
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK))
		Expect(health.Status).To(Equal("healthy"))
		Expect(health.Version).To(Equal(apiv1.Version))
	})

	It("should describe its endpoints at the root", func() {
		var root apiv1.RootResponse
		status, err := getJSON("/", &root)
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK))
		Expect(root.Version).To(Equal(apiv1.Version))
		Expect(root.Endpoints).To(HaveKey("convert"))
		Expect(root.Endpoints).To(HaveKey("export-csv"))
	})

	It("should convert a D86 curve to the other families", func() {
		status, raw, err := postJSON("/convert", keroseneRequest())
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK), "body: %s", raw)

		var resp apiv1.ConversionResponse
		Expect(json.Unmarshal(raw, &resp)).To(Succeed())
		Expect(resp.Conversions).To(HaveLen(7))

		By("preserving the input knots on the D86 curve")
		Expect(resp.Conversions[0].D86C).NotTo(BeNil())
		Expect(*resp.Conversions[0].D86C).To(Equal(160.0))
		Expect(*resp.Conversions[3].D86C).To(Equal(225.0))

		By("placing the synthesized curves above D86 at the midpoint")
		Expect(resp.Conversions[3].D2887C).NotTo(BeNil())
		Expect(*resp.Conversions[3].D2887C).To(BeNumerically("~", 228.2, 0.15))
		Expect(resp.Conversions[3].TBPC).NotTo(BeNil())
		Expect(*resp.Conversions[3].TBPC).To(BeNumerically("~", 227.7, 0.3))

		By("reporting the bulk properties")
		Expect(resp.Properties.VABPFahrenheit).To(Equal(437.0))
		Expect(resp.Properties.WatsonK).To(BeNumerically("~", 11.693, 0.01))
		Expect(resp.Metadata.NumInputPoints).To(Equal(7))
	})

	It("should reconstruct the D86 midpoint from its own D2887 output", func() {
		By("converting a D86 curve to D2887")
		status, raw, err := postJSON("/convert", keroseneRequest())
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK))

		var first apiv1.ConversionResponse
		Expect(json.Unmarshal(raw, &first)).To(Succeed())

		By("feeding the reported D2887 curve back as input")
		back := apiv1.ConversionRequest{DensityKgM3: 820, InputType: "D2887"}
		for _, point := range first.Conversions {
			Expect(point.D2887C).NotTo(BeNil())
			back.DistillationData = append(back.DistillationData, apiv1.DistillationPoint{
				VolumePercent: point.VolumePercent,
				TemperatureC:  *point.D2887C,
			})
		}

		status, raw, err = postJSON("/convert", back)
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK), "body: %s", raw)

		var second apiv1.ConversionResponse
		Expect(json.Unmarshal(raw, &second)).To(Succeed())

		// The 50% anchor inverts exactly; only wire rounding remains.
		Expect(second.Conversions[3].D86C).NotTo(BeNil())
		Expect(*second.Conversions[3].D86C).To(BeNumerically("~", 225.0, 0.2),
			"D86 midpoint should survive the D2887 round trip")
	})

	It("should characterize the sample from its properties", func() {
		status, raw, err := postJSON("/properties", keroseneRequest())
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK), "body: %s", raw)

		var props apiv1.PropertiesResponse
		Expect(json.Unmarshal(raw, &props)).To(Succeed())
		Expect(props.VABPFahrenheit).To(Equal(437.0))
		Expect(props.MeABPFahrenheit).To(BeNumerically("~", 423.0, 1.0))
		Expect(props.Characterization).To(Equal("Mixed"))
	})

	It("should isolate failures inside a batch", func() {
		bad := keroseneRequest()
		bad.DensityKgM3 = 5000

		status, raw, err := postJSON("/batch", []apiv1.ConversionRequest{keroseneRequest(), bad})
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusOK), "body: %s", raw)

		var batch apiv1.BatchResponse
		Expect(json.Unmarshal(raw, &batch)).To(Succeed())
		Expect(batch.Total).To(Equal(2))
		Expect(batch.Successful).To(Equal(1))
		Expect(batch.Failed).To(Equal(1))
		Expect(batch.Results[0].Status).To(Equal(apiv1.StatusSuccess))
		Expect(batch.Results[1].Status).To(Equal(apiv1.StatusError))
		Expect(batch.Results[1].Error).NotTo(BeEmpty())
	})

	It("should export the conversion table as CSV", func() {
		raw, err := json.Marshal(keroseneRequest())
		Expect(err).NotTo(HaveOccurred())

		resp, err := httpClient.Post(baseURL+"/export-csv", "application/json", bytes.NewReader(raw))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(HavePrefix("text/csv"))
		Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("distillation_conversions.csv"))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.HasPrefix(string(body), "Volume%,D86_C,D2887_C,TBP_C\n")).To(BeTrue())
		Expect(string(body)).To(ContainSubstring("Watson K"))
	})

	It("should reject unphysical input", func() {
		req := keroseneRequest()
		req.DensityKgM3 = 5000

		status, raw, err := postJSON("/convert", req)
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusBadRequest))

		var errResp apiv1.ErrorResponse
		Expect(json.Unmarshal(raw, &errResp)).To(Succeed())
		Expect(errResp.Error).To(HavePrefix("Invalid input:"))
	})

	It("should expose conversion metrics", func() {
		resp, err := httpClient.Get(baseURL + "/metrics")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		_, _ = fmt.Fprintf(GinkgoWriter, "metrics payload: %d bytes\n", len(body))
		Expect(string(body)).To(ContainSubstring("distillation_conversions_total"))
		Expect(string(body)).To(ContainSubstring("distillation_http_requests_total"))
	})
})
