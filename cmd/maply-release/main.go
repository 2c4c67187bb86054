package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/go-maply/maply/utils"
)

const HelpBanner = `
┌┬┐┌─┐┌─┐┬  ┬ ┬
│││├─┤├─┘│  └┬┘
┴ ┴┴ ┴┴  ┴─┘ ┴  release

Release automation for the maply library: bumps the version manifest,
updates the changelog, tags the commit and publishes the release.

Usage: maply-release [flags] [patch|minor|major]

`

var (
	// Flags
	dryRun       = flag.Bool("dry-run", false, "Print the mutating commands instead of running them")
	yes          = flag.Bool("yes", false, "Skip the interactive confirmation")
	configFile   = flag.String("config", "", "Release config file")
	manifestPath = flag.String("manifest", "", "Version manifest file (default .maply.yml)")
	branch       = flag.String("branch", "", "Release branch (default main)")
	remote       = flag.String("remote", "", "Git remote (default origin)")
)

// manifest mirrors the version manifest file.
type manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// runner shells out to git and gh, printing instead of executing when the
// dry-run mode is active.
type runner struct {
	dryRun bool
}

func (r *runner) run(name string, args ...string) error {
	if r.dryRun {
		fmt.Printf("%s %s %s\n",
			utils.DecorateText("dry-run:", utils.StatusMessage), name, strings.Join(args, " "))
		return nil
	}
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}
	return nil
}

// output runs a read-only command and returns its trimmed output.
func output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}
	return strings.TrimSpace(string(out)), nil
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, HelpBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	part := flag.Arg(0)
	if part == "" {
		part = "patch"
	}
	if part != "patch" && part != "minor" && part != "major" {
		flag.Usage()
		log.Fatalf(utils.DecorateText("\nUnknown version part %q, want patch, minor or major!", utils.ErrorMessage), part)
	}

	cfg := loadConfig()
	now := time.Now()

	mf, err := readManifest(cfg.GetString("manifest"))
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to read the version manifest: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	next, err := bumpVersion(mf.Version, part)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to bump the version: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	tag := "v" + next

	if err := checkWorktree(cfg.GetString("branch")); err != nil {
		log.Fatalf(
			utils.DecorateText("Refusing to release: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	notes := releaseNotes(next)
	if !confirm(fmt.Sprintf("Release %s from branch %s?", tag, cfg.GetString("branch"))) {
		log.Fatal(utils.DecorateText("Release aborted.", utils.ErrorMessage))
	}

	r := &runner{dryRun: *dryRun}

	status("bumping the version to " + next)
	mf.Version = next
	if err := writeManifest(r, cfg.GetString("manifest"), mf); err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to write the version manifest: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	status("updating the changelog")
	if err := prependChangelog(r, "CHANGELOG.md", notes); err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to update the changelog: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	status("committing, tagging and pushing")
	steps := [][]string{
		{"git", "add", cfg.GetString("manifest"), "CHANGELOG.md"},
		{"git", "commit", "-m", "release " + tag},
		{"git", "tag", "-a", tag, "-m", tag},
		{"git", "push", cfg.GetString("remote"), cfg.GetString("branch")},
		{"git", "push", cfg.GetString("remote"), tag},
		{"gh", "release", "create", tag, "--title", tag, "--notes", notes},
	}
	for _, step := range steps {
		if err := r.run(step[0], step[1:]...); err != nil {
			log.Fatalf(
				utils.DecorateText("Release step failed: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	fmt.Fprintf(os.Stderr, "\n%s %s in %s\n",
		utils.DecorateText("⚡ RELEASE", utils.StatusMessage),
		utils.DecorateText(tag+" published ✔", utils.SuccessMessage),
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.DefaultMessage),
	)
}

// loadConfig resolves the release settings from defaults, the optional
// config file, MAPLY_* environment variables and the flags, in that order.
func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("manifest", ".maply.yml")
	v.SetDefault("branch", "main")
	v.SetDefault("remote", "origin")
	v.SetEnvPrefix("MAPLY")
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to read the config file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	if *manifestPath != "" {
		v.Set("manifest", *manifestPath)
	}
	if *branch != "" {
		v.Set("branch", *branch)
	}
	if *remote != "" {
		v.Set("remote", *remote)
	}
	return v
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mf := &manifest{}
	if err := yaml.Unmarshal(data, mf); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if mf.Version == "" {
		return nil, errors.Errorf("%s carries no version field", path)
	}
	return mf, nil
}

func writeManifest(r *runner, path string, mf *manifest) error {
	data, err := yaml.Marshal(mf)
	if err != nil {
		return err
	}
	if r.dryRun {
		fmt.Printf("%s write %s:\n%s",
			utils.DecorateText("dry-run:", utils.StatusMessage), path, string(data))
		return nil
	}
	return os.WriteFile(path, data, 0644)
}

// bumpVersion increments the named part of a semantic version.
func bumpVersion(version, part string) (string, error) {
	var major, minor, patch int
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if _, err := fmt.Sscanf(v, "%d.%d.%d", &major, &minor, &patch); err != nil {
		return "", errors.Wrapf(err, "invalid version %q", version)
	}
	switch part {
	case "major":
		major, minor, patch = major+1, 0, 0
	case "minor":
		minor, patch = minor+1, 0
	case "patch":
		patch++
	default:
		return "", errors.Errorf("unknown version part %q", part)
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch), nil
}

// checkWorktree refuses to release from a dirty worktree or from a branch
// other than the configured release branch.
func checkWorktree(releaseBranch string) error {
	dirty, err := output("git", "status", "--porcelain")
	if err != nil {
		return err
	}
	if dirty != "" {
		return errors.New("the worktree has uncommitted changes")
	}
	current, err := output("git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}
	if current != releaseBranch {
		return errors.Errorf("on branch %s, releases go out from %s", current, releaseBranch)
	}
	return nil
}

// releaseNotes builds the changelog section for the new version from the
// commit subjects since the last tag.
func releaseNotes(version string) string {
	logRange := ""
	if lastTag, err := output("git", "describe", "--tags", "--abbrev=0"); err == nil && lastTag != "" {
		logRange = lastTag + "..HEAD"
	}

	args := []string{"log", "--pretty=format:%s"}
	if logRange != "" {
		args = append(args, logRange)
	}
	subjects, err := output("git", args...)
	if err != nil || subjects == "" {
		subjects = "maintenance release"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## v%s - %s\n\n", version, time.Now().Format("2006-01-02"))
	for _, line := range strings.Split(subjects, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}
	return sb.String()
}

// prependChangelog writes the new section on top of the existing changelog,
// seeding a fresh file with the top-level header.
func prependChangelog(r *runner, path, section string) error {
	if r.dryRun {
		fmt.Printf("%s prepend to %s:\n%s\n",
			utils.DecorateText("dry-run:", utils.StatusMessage), path, section)
		return nil
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		return os.WriteFile(path, []byte("# Changelog\n\n"+section+"\n"), 0644)
	}
	content := section + "\n" + string(old)
	return os.WriteFile(path, []byte(content), 0644)
}

// confirm asks on the terminal before mutating anything. A non-interactive
// run requires the -yes flag.
func confirm(question string) bool {
	if *yes || *dryRun {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal(utils.DecorateText("stdin is not a terminal, pass -yes to release non-interactively", utils.ErrorMessage))
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", utils.DecorateText(question, utils.StatusMessage))
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func status(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n",
		utils.DecorateText("⚡ RELEASE", utils.StatusMessage),
		utils.DecorateText("⇢ "+msg, utils.DefaultMessage),
	)
}
