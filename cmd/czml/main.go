package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Converts an exported locations CSV into a CZML document with one billboard
// pin per record, for display on a Cesium globe.

const pinImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAADIAAAAyCAYAAAAeP4ixAAAAAXNSR0IArs4c6QAAAERlWElmTU0AKgAAAAgAAYdpAAQAAAABAAAAGgAAAAAAA6ABAAMAAAABAAEAAKACAAQAAAABAAAAMqADAAQAAAABAAAAMgAAAAB1y6+rAAAFUUlEQVRoBe1YS0hkRxSt/vhBg0ZF/GvwExURwWUiQrIyKJqVm2QxiF8MCBKzyscJZKku8vGzcJVsBHGICMkiE4TJDEgk6CqDxok6Go1gUJOoON2dcypdnU7b/ep1v/ckQi68rup3b917z7t1b31cIg6anp5+HeJv4WnCkxLH0HhELwOBwHcul+vjvr6+e2YHuswKAsQHkB2l/O7urr+kpMS9sbHBv7ZRVVWV2NnZ8ZeWlrqDSkcB5q4ZA6aATE5OvuF2uz8/Ojryzc7Oera2tszoTlimvLxcdHV1+XJzcz2IzJu9vb1f6JQp5IZyUMZoiJmZGcdB0A4/FGaAh31Ms/fZ6kgLBM6/BiBVy8vLDLtOn218TF9Bm6AX6YNOsRYIvggTW6ytrel02c5XNpUPRga0QDD4BSo4ODhgc6OkbGJGlOkMmwHyik6JU3wAkKoRkVd1NswAeUAlV1dXOl2288NsSh+MDJgBYjT+P8P7H4gKBVZh1vrQo96Hv2O/sbFRsaRs6A865GPBDX8Vd9/S6IyMDLG9vS38fr/AVkIap1OKWHUmJibE8fGxWF1dFfX19Yple2sJyMnJiXTI4/Fw1ReqyigvNzc3xfDwsMjJyZGv1tfXFcv21hKQaN5EglEyh4eHqutIazuQWF7m5eXFYsn34VPSUDAG0xKQgYEBqbayslK2Z2dn1xKZjKYmucsR7e3tUo4/Kysrsj8/Py9bq0C8UkuCP1NTU2J8fFyEn0syMzND2ghAObi3tycWFxclb2lpSbS2toZ4ak8VGphAxxIQ2ktLSxOpqam/JCcn/3Z6elqLV3JfEStXOKatrU2gQPyenp7+9Pz8PB8r+PN8b4UsA6Hxi4sL+cTjiM/nEwAezxBDWVuAwEJB8DE0FsF8Dv9rIt4l/NdSsids1YGBZoDIkpOUlOSAeWOVyiby7WVjSSHMAPlWp8Qpvqp42AJpfTAD5AkdLShgGtwsKZuIyM86y1og+CoPqKShoUGny3a+sql8MDKgBdLf3/8VFD1ubm4W3LLfFJWVlQnaBP1IH3R2tUCCCu6yxVbdV1FRodNpmc8bRzjvoyJ8xFEzCv8+3ZuQxIXZexD7kKL7+/v+wsJCN7fpPItwcWPLh1uRhYUFQ40dHR0CV67yMMUDFY8BbLlnU7qDCt7Fx/vIUFmQaRoI5XHmaMcXGsTzEhKQC9o1wnYjMDQ05CK4aIStjBgbGwugjWX7DOOYl58CxFI0HdHexbWy4w72SyjhE6K5uTkPToLey8tLLzaMn6D23+HdbfhGMiSMTk1NjSAI0Gc4mL2TkpLyLD8//1lnZ2d05OGDDfpxAYmmJ+gAnbhExL5Ge4d5ZASEejAN742MjPzBvh1kNtlN2cKUe0hBRiQWVVdXk3WVnZ19P5ZMIu9tBYI5vQMnniBp/7mBCPMqKytLFBcXsxLdtzqVwtTKrq1AqJFRwTnDhaoWaUsEo8FLClujQUO2A0EZldMr2nrDRCcxIrJj44/tQFB2H9G/aHkCIMAQ+BWL3fc2YpCqbAeCC4kf4OxpZESKiooEcoRl1/ZoEIntQKgUzj7k9U/4RYSaVii7twcIsFwrwyrRkUO3BwgiIvMkfHrV1tYyPx6jRP/EqNlNllf2aA7B4X9FhLvZ4Lbkm2jydrxzJEfw1f9EVFYYEa/XK/dXdBb5oT2yJgrKESBBp0NlWOUHQDmSH7TnGBC1MNbV1QlOLdCj7u7uY3acIMeA4FwiI9LS0qL8diwaNOAYkMHBwV3oD1Uop8qu+kqOAQkakNWL/Z6entsZETqPyiXvxNh3mpyOiLqFeNtpIH8BKWDRQSEFiXgAAAAASUVORK5CYII="

type czmlDocument struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

type czmlPosition struct {
	CartographicDegrees []float64 `json:"cartographicDegrees"`
}

type czmlBillboard struct {
	Image                    string `json:"image"`
	VerticalOrigin           string `json:"verticalOrigin"`
	HeightReference          string `json:"heightReference"`
	Width                    int    `json:"width"`
	Height                   int    `json:"height"`
	DisableDepthTestDistance int64  `json:"disableDepthTestDistance"`
}

type czmlPin struct {
	ID        string        `json:"id"`
	Position  czmlPosition  `json:"position"`
	Billboard czmlBillboard `json:"billboard"`
}

func main() {
	file := flag.String("file", "", "Path to the exported locations CSV")
	out := flag.String("out", "standorte.czml", "Path of the CZML file to write")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	pins, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	document := []any{czmlDocument{ID: "document", Version: "1.0"}}
	for _, pin := range pins {
		document = append(document, pin)
	}

	data, err := json.MarshalIndent(document, "", "    ")
	if err != nil {
		fmt.Printf("Error encoding CZML: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Printf("Error writing CZML file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d pins to %s\n", len(pins), *out)
}

func parseCSV(filePath string) ([]czmlPin, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var pins []czmlPin
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 6 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 6 columns", len(record))
		}

		xCoord, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x_coord: %s", record[4])
		}

		yCoord, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y_coord: %s", record[5])
		}

		pins = append(pins, czmlPin{
			ID:       record[0],
			Position: czmlPosition{CartographicDegrees: []float64{xCoord, yCoord, 0}},
			Billboard: czmlBillboard{
				Image:                    pinImage,
				VerticalOrigin:           "BOTTOM",
				HeightReference:          "RELATIVE_TO_GROUND",
				Width:                    50,
				Height:                   50,
				DisableDepthTestDistance: 1000000000,
			},
		})
	}

	return pins, nil
}
