package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/validation"
)

const (
	assetPrefix       = "go-bpmn-schema-"
	sampleAssetPrefix = "go-bpmn-schema-sample-"
)

func main() {
	log.SetFlags(0)

	flags := flag.NewFlagSet("upload-release-assets", flag.ContinueOnError)
	flags.SetOutput(log.Writer())

	var (
		releaseId string
		dryRun    bool
	)
	flags.StringVar(&releaseId, "release-id", "", "ID of the Github release")
	flags.BoolVar(&dryRun, "dry-run", false, "verify the assets without uploading them")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
	}

	if releaseId == "" && !dryRun {
		log.Fatal("please provide a release ID")
	}

	buildArtifacts, err := os.ReadDir("./build")
	if err != nil {
		log.Fatalf("failed to read build directory: %v", err)
	}

	type asset struct {
		name        string
		contentType string
	}

	var assets []asset
	for _, buildArtifact := range buildArtifacts {
		name := buildArtifact.Name()
		if !strings.HasPrefix(name, assetPrefix) {
			log.Fatalf("file %s is not a release asset", name)
		}

		var contentType string
		switch {
		case strings.HasSuffix(name, ".tar.gz"):
			contentType = "application/gzip"
		case strings.HasSuffix(name, ".sha256"):
			verifyChecksum(name)
			contentType = "text/plain"
		case strings.HasPrefix(name, sampleAssetPrefix) && strings.HasSuffix(name, ".yaml"):
			verifySample(name)
			contentType = "application/yaml"
		default:
			log.Fatalf("file %s has an unsupported extension", name)
		}

		assets = append(assets, asset{name: name, contentType: contentType})
	}

	for _, asset := range assets {
		if dryRun {
			log.Printf("%s (%s)", asset.name, asset.contentType)
			continue
		}
		uploadReleaseAsset(releaseId, asset.name, asset.contentType)
	}
}

// verifyChecksum compares the checksum, written by sha256sum, with the checksum of the archive.
func verifyChecksum(name string) {
	b, err := os.ReadFile(filepath.Join("./build", name))
	if err != nil {
		log.Fatalf("failed to read checksum file %s: %v", name, err)
	}

	fields := strings.Fields(string(b))
	if len(fields) != 2 {
		log.Fatalf("checksum file %s is malformed", name)
	}

	archive, err := os.ReadFile(filepath.Join("./build", fields[1]))
	if err != nil {
		log.Fatalf("failed to read archive %s: %v", fields[1], err)
	}

	checksum := sha256.Sum256(archive)
	if hex.EncodeToString(checksum[:]) != fields[0] {
		log.Fatalf("checksum of archive %s does not match %s", fields[1], name)
	}
}

// verifySample decodes an exported sample diagram and ensures that it has no validation errors.
func verifySample(name string) {
	b, err := os.ReadFile(filepath.Join("./build", name))
	if err != nil {
		log.Fatalf("failed to read sample %s: %v", name, err)
	}

	d, err := codec.DecodeYAML(b)
	if err != nil {
		log.Fatalf("failed to decode sample %s: %v", name, err)
	}

	v, err := validation.New(d)
	if err != nil {
		log.Fatalf("failed to create validator: %v", err)
	}

	v.Validate()

	if v.HasErrors() {
		log.Fatalf("sample %s is invalid:\n%s", name, validation.Report(v.Findings()))
	}
}

func uploadReleaseAsset(releaseId, name string, contentType string) {
	githubToken, ok := os.LookupEnv("GITHUB_TOKEN")
	if !ok {
		log.Fatal("please set environment variable GITHUB_TOKEN")
	}

	var stderr bytes.Buffer

	cmd := exec.Command(
		"curl",
		"-L",
		"--fail-with-body",
		"-X", "POST",
		"-H", "Accept: application/vnd.github+json",
		"-H", "Authorization: Bearer "+githubToken,
		"-H", "X-GitHub-Api-Version: 2022-11-28",
		"-H", "Content-Type: "+contentType,
		fmt.Sprintf("https://uploads.github.com/repos/gclaussn/go-bpmn-schema/releases/%s/assets?name=%s", releaseId, name),
		"--data-binary", "@./build/"+name,
	)
	cmd.Stderr = &stderr

	log.Printf("uploading %s", name)

	out, err := cmd.Output()
	if len(out) != 0 {
		log.Println(string(out))
	}
	if err != nil {
		log.Fatalf("failed to upload %s: %v\n%s", name, err, stderr.String())
	}
}
